package models

// OrderRecord is one line-item row of the exported order list. An order with
// N items appears as N records sharing an OrderNo, and each of those records
// carries the full OrderTotal of the order.
type OrderRecord struct {
	ID           int     `json:"id"`
	OrderNo      string  `json:"orderNo"`
	OrderDate    string  `json:"orderDate"`
	OrderYear    int     `json:"orderYear"`
	OrderMonth   int     `json:"orderMonth"`
	OrderTotal   float64 `json:"orderTotal"`
	CustomerName string  `json:"customerName"`
	Email        string  `json:"email"`
	MobileNo     string  `json:"mobileNo"`
	ShipTo       string  `json:"shipTo"`
	State        string  `json:"state"`
	ItemName     string  `json:"itemName"`
	ItemBrand    string  `json:"itemBrand"`
}

// Metadata describes the full export, independent of the loaded records. The
// states and brands lists are the universe of selectable filter values.
type Metadata struct {
	TotalOrders     int       `json:"totalOrders"`
	TotalRecords    int       `json:"totalRecords"`
	TotalRevenue    float64   `json:"totalRevenue"`
	DateRange       DateSpan  `json:"dateRange"`
	States          []string  `json:"states"`
	Brands          []string  `json:"brands"`
	UniqueCustomers int       `json:"uniqueCustomers"`
	UniqueItems     int       `json:"uniqueItems"`
}

type DateSpan struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

type ItemSummary struct {
	Name     string  `json:"name"`
	FullName string  `json:"fullName"`
	Count    int     `json:"count"`
	Revenue  float64 `json:"revenue"`
}

type BrandSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CustomerSummary struct {
	Name          string  `json:"name"`
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	OrderCount    int     `json:"orderCount"`
	TotalSpent    float64 `json:"totalSpent"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

type StateSummary struct {
	State   string  `json:"state"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type MonthBucket struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type OverviewStats struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	AvgOrderValue   float64 `json:"avgOrderValue"`
}

// CustomerRow is one row of the customers view.
type CustomerRow struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	State         string  `json:"state"`
	OrderCount    int     `json:"orderCount"`
	ItemCount     int     `json:"itemCount"`
	TotalSpent    float64 `json:"totalSpent"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

type CustomerStats struct {
	TotalCustomers       int         `json:"totalCustomers"`
	TopSpender           CustomerRow `json:"topSpender"`
	AvgOrdersPerCustomer float64     `json:"avgOrdersPerCustomer"`
}

type CustomerBreakdown struct {
	Customers []CustomerRow  `json:"customers"`
	Stats     *CustomerStats `json:"stats"`
}

type ItemRow struct {
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	OrderCount    int     `json:"orderCount"`
	TotalRevenue  float64 `json:"totalRevenue"`
	CustomerCount int     `json:"customerCount"`
	AvgRevenue    float64 `json:"avgRevenue"`
}

type ItemStats struct {
	TotalItems       int     `json:"totalItems"`
	TopItem          ItemRow `json:"topItem"`
	TotalItemRevenue float64 `json:"totalItemRevenue"`
}

type ItemBreakdown struct {
	Items []ItemRow  `json:"items"`
	Stats *ItemStats `json:"stats"`
}

type StateRow struct {
	State         string  `json:"state"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	CustomerCount int     `json:"customerCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	Percentage    float64 `json:"percentage"`
}

type GeoStats struct {
	TotalStates  int      `json:"totalStates"`
	TopState     StateRow `json:"topState"`
	TotalRevenue float64  `json:"totalRevenue"`
}

type GeoBreakdown struct {
	States []StateRow `json:"states"`
	Stats  *GeoStats  `json:"stats"`
}
