// backend-go/internal/domain/models.go
package domain

import "time"

// Order is the local order header (tblorder). Lifecycle markers stay nil
// until the matching transition stamps them.
type Order struct {
	OrderNo        string     `json:"OrderNo" db:"OrderNo"`
	DateTime       time.Time  `json:"DateTime" db:"DateTime"`
	StoreName      string     `json:"StoreName" db:"StoreName"`
	OrderComplete  int        `json:"OrderComplete" db:"OrderComplete"`
	User           string     `json:"User" db:"User"`
	ApprovedBy     *string    `json:"Order_Approved_By" db:"Order_Approved_By"`
	ApprovedDate   *time.Time `json:"Order_Approved_Date" db:"Order_Approved_Date"`
	PackedBy       *string    `json:"Order_Packed_By" db:"Order_Packed_By"`
	PackedDate     *time.Time `json:"Order_Packed_Date" db:"Order_Packed_Date"`
	DispatchBy     *string    `json:"Order_Dispatch_By" db:"Order_Dispatch_By"`
	DispatchedDate *time.Time `json:"Order_Dispatched_Date" db:"Order_Dispatched_Date"`
	ReceivedDate   *time.Time `json:"Order_Rcvd_Date" db:"Order_Rcvd_Date"`
}

// OrderLine is one stock line of an order. Locally it lives in tblorder_tran;
// the cloud mirror (tblorders) carries the same fields denormalized onto the
// header row.
type OrderLine struct {
	OrderNo          string    `json:"OrderNo" db:"OrderNo"`
	DateTime         time.Time `json:"DateTime" db:"DateTime"`
	StockCode        string    `json:"StockCode" db:"StockCode"`
	StockDescription string    `json:"StockDescription" db:"StockDescription"`
	MajorNo          string    `json:"MajorNo" db:"MajorNo"`
	MajorName        string    `json:"MajorName" db:"MajorName"`
	Sub1No           string    `json:"Sub1No" db:"Sub1No"`
	Sub1Name         string    `json:"Sub1Name" db:"Sub1Name"`
	OrderQty         int       `json:"Order_Qty" db:"Order_Qty"`
	RcvdQty          int       `json:"Rcvd_Qty" db:"Rcvd_Qty"`
	AmendedQty       int       `json:"Amended_Qty" db:"Amended_Qty"`
	FinalQty         int       `json:"Final_Qty" db:"Final_Qty"`
	AmendedShop      *string   `json:"Amended_Shop" db:"Amended_Shop"`
}

// OrderView is one row of the union read: header fields joined with line
// fields. Line fields are nullable because a header without a line row is
// tolerated on read (outer-join semantics keyed on OrderNo).
type OrderView struct {
	OrderNo          string     `json:"OrderNo" db:"OrderNo"`
	StoreName        string     `json:"StoreName" db:"StoreName"`
	OrderComplete    int        `json:"OrderComplete" db:"OrderComplete"`
	User             string     `json:"User" db:"User"`
	ApprovedBy       *string    `json:"Order_Approved_By" db:"Order_Approved_By"`
	ApprovedDate     *time.Time `json:"Order_Approved_Date" db:"Order_Approved_Date"`
	PackedBy         *string    `json:"Order_Packed_By" db:"Order_Packed_By"`
	PackedDate       *time.Time `json:"Order_Packed_Date" db:"Order_Packed_Date"`
	DispatchBy       *string    `json:"Order_Dispatch_By" db:"Order_Dispatch_By"`
	DispatchedDate   *time.Time `json:"Order_Dispatched_Date" db:"Order_Dispatched_Date"`
	ReceivedDate     *time.Time `json:"Order_Rcvd_Date" db:"Order_Rcvd_Date"`
	StockCode        *string    `json:"StockCode" db:"StockCode"`
	StockDescription *string    `json:"StockDescription" db:"StockDescription"`
	MajorNo          *string    `json:"MajorNo" db:"MajorNo"`
	MajorName        *string    `json:"MajorName" db:"MajorName"`
	Sub1No           *string    `json:"Sub1No" db:"Sub1No"`
	Sub1Name         *string    `json:"Sub1Name" db:"Sub1Name"`
	OrderQty         *int       `json:"Order_Qty" db:"Order_Qty"`
	RcvdQty          *int       `json:"Rcvd_Qty" db:"Rcvd_Qty"`
	AmendedQty       *int       `json:"Amended_Qty" db:"Amended_Qty"`
	FinalQty         *int       `json:"Final_Qty" db:"Final_Qty"`
	AmendedShop      *string    `json:"Amended_Shop" db:"Amended_Shop"`
}

// BoxInfo is one packed box for an (order, stock code) pair. BoxNo is
// sequential within the order, starting at 1.
type BoxInfo struct {
	OrderNo        string `json:"OrderNo" db:"OrderNo"`
	StockCode      string `json:"StockCode" db:"StockCode"`
	BoxNo          int    `json:"BoxNo" db:"BoxNo"`
	BoxCodeQty     int    `json:"BoxCodeQty" db:"BoxCodeQty"`
	BoxTotalQty    int    `json:"BoxTotalQty" db:"BoxTotalQty"`
	DoneAndPrinted int    `json:"DoneAndPrinted" db:"DoneAndPrinted"`
}

// PackSize maps a pack-size descriptor to a quantity per box.
type PackSize struct {
	PackSize  int `json:"PackSize" db:"PackSize"`
	QtyPerBox int `json:"QtyPerBox" db:"QtyPerBox"`
}

// Store is a registered site with its own database endpoint.
type Store struct {
	ID        int64  `json:"id" db:"id"`
	StoreName string `json:"Storename" db:"Storename"`
	UserName  string `json:"userName" db:"userName"`
	Password  string `json:"-" db:"Password"`
	PortNo    string `json:"PortNo" db:"PortNo"`
	HostIP    string `json:"HostIP" db:"HostIP"`
}

// User is an application login account (tblusers).
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"Email" db:"Email"`
	Password  string    `json:"-" db:"Password"`
	Roles     string    `json:"Roles" db:"Roles"`
	Permiss   string    `json:"Permission" db:"Permission"`
	Created   time.Time `json:"Created" db:"Created"`
	StoreName *string   `json:"StoreName" db:"StoreName"`
}

// Product is a catalog entry (cloud tblproducts). PackQty, when positive, is
// the validated quantity-per-box; the description-parsing fallback only runs
// when it is zero.
type Product struct {
	StockCode        string `json:"StockCode" db:"StockCode"`
	StockDescription string `json:"StockDescription" db:"StockDescription"`
	MajorNo          string `json:"MajorNo" db:"MajorNo"`
	Sub1No           string `json:"Sub1No" db:"Sub1No"`
	StockOnHand      int    `json:"StockOnHand" db:"StockOnHand"`
	PackQty          int    `json:"PackQty" db:"PackQty"`
}

// Category is a major category row (cloud tblcategory).
type Category struct {
	MajorNo          string `json:"MajorNo" db:"MajorNo"`
	MajorDescription string `json:"MajorDescription" db:"MajorDescription"`
}

// GRN is a goods receipt note header. GRNs are append-only: created
// atomically with their lines and never mutated afterwards.
type GRN struct {
	GRVNumber       string    `json:"grvNumber" db:"GRVNumber"`
	OrderNo         string    `json:"orderNo" db:"OrderNo"`
	InvoiceNumber   string    `json:"invoiceNumber" db:"InvoiceNumber"`
	SupplierCode    string    `json:"supplierCode" db:"SupplierCode"`
	ShippingCharge  string    `json:"shippingCharge" db:"ShippingCharge"`
	HandlingCharge  string    `json:"handlingCharge" db:"HandlingCharge"`
	OtherCharge     string    `json:"otherCharge" db:"OtherCharge"`
	SubTotal        string    `json:"subTotal" db:"SubTotal"`
	DiscountAmount  string    `json:"discountAmount" db:"DiscountAmount"`
	VATAmount       string    `json:"vatAmount" db:"VATAmount"`
	ReceivedBy      string    `json:"receivedBy" db:"ReceivedBy"`
	DateTime        time.Time `json:"dateTime" db:"DateTime"`
}

// GRNLine is one received stock line on a GRN.
type GRNLine struct {
	GRVNumber        string `json:"grvNumber" db:"GRVNumber"`
	StockCode        string `json:"stockCode" db:"StockCode"`
	QtyReceived      int    `json:"qtyReceived" db:"QtyReceived"`
	BonusQty         int    `json:"bonusQty" db:"BonusQty"`
	QtyOrdered       int    `json:"qtyOrdered" db:"QtyOrdered"`
	ExclUnitCost     string `json:"exclUnitCost" db:"ExclUnitCost"`
	InclUnitCost     string `json:"inclUnitCost" db:"InclUnitCost"`
	Markup           string `json:"markup" db:"Markup"`
	ExclSelling      string `json:"exclSelling" db:"ExclSelling"`
	InclSelling      string `json:"inclSelling" db:"InclSelling"`
	VATPercentage    string `json:"vatPercentage" db:"VATPercentage"`
	Discount1        string `json:"discount1" db:"Discount1"`
	DiscountAmount   string `json:"discountAmount" db:"DiscountAmount"`
	VATAmount        string `json:"vatAmount" db:"VATAmount"`
	SubTotal         string `json:"subTotal" db:"SubTotal"`
	LineTotal        string `json:"lineTotal" db:"LineTotal"`
}

// Discrepancy is one under-received order line from the discrepancy report.
type Discrepancy struct {
	OrderNo    string `json:"OrderNo" db:"OrderNo"`
	StockCode  string `json:"StockCode" db:"StockCode"`
	OrderQty   int    `json:"Order_Qty" db:"Order_Qty"`
	RcvdQty    int    `json:"Rcvd_Qty" db:"Rcvd_Qty"`
	MissingQty int    `json:"missingQty" db:"missingQty"`
}

// SyncJournalEntry tracks one run of a cross-database transition. StepIndex
// counts committed steps; a row with StepIndex < TotalSteps is a half-applied
// transition that replay can pick up or an operator can inspect.
type SyncJournalEntry struct {
	ID         string    `json:"id" db:"id"`
	OrderNo    string    `json:"OrderNo" db:"OrderNo"`
	Transition string    `json:"transition" db:"Transition"`
	LastStep   string    `json:"lastStep" db:"LastStep"`
	StepIndex  int       `json:"stepIndex" db:"StepIndex"`
	TotalSteps int       `json:"totalSteps" db:"TotalSteps"`
	UpdatedAt  time.Time `json:"updatedAt" db:"UpdatedAt"`
}
