// backend-go/cmd/seed/schema.go
package main

import "github.com/jmoiron/sqlx"

// cloudSchema holds the warehouse-wide tables: the denormalized order mirror
// and the master catalog.
var cloudSchema = []string{
	`CREATE TABLE IF NOT EXISTS tblorders (
		OrderNo             VARCHAR(32)  NOT NULL,
		DateTime            DATETIME     NOT NULL,
		StoreName           VARCHAR(64)  NOT NULL,
		OrderComplete       TINYINT      NOT NULL DEFAULT 0,
		User                VARCHAR(64)  NOT NULL DEFAULT '',
		StockCode           VARCHAR(32)  NOT NULL DEFAULT '',
		StockDescription    TEXT,
		MajorNo             VARCHAR(16)  NOT NULL DEFAULT '',
		MajorName           VARCHAR(64)  NOT NULL DEFAULT '',
		Sub1No              VARCHAR(16)  NOT NULL DEFAULT '',
		Sub1Name            VARCHAR(64)  NOT NULL DEFAULT '',
		Order_Qty           INT          NOT NULL DEFAULT 0,
		Rcvd_Qty            INT          NOT NULL DEFAULT 0,
		Amended_Qty         INT          NOT NULL DEFAULT 0,
		Final_Qty           INT          NOT NULL DEFAULT 0,
		Amended_Shop        VARCHAR(64)  NULL,
		Order_Approved_By   VARCHAR(64)  NULL,
		Order_Approved_Date DATETIME     NULL,
		Order_Packed_By     VARCHAR(64)  NULL,
		Order_Packed_Date   DATETIME     NULL,
		Order_Dispatch_By   VARCHAR(64)  NULL,
		Order_Dispatched_Date DATETIME   NULL,
		Order_Rcvd_Date     DATETIME     NULL,
		PRIMARY KEY (OrderNo)
	)`,
	`CREATE TABLE IF NOT EXISTS tblproducts (
		StockCode        VARCHAR(32)   NOT NULL,
		StockDescription VARCHAR(256)  NOT NULL DEFAULT '',
		MajorNo          VARCHAR(16)   NOT NULL DEFAULT '',
		Sub1No           VARCHAR(16)   NOT NULL DEFAULT '',
		StockOnHand      INT           NOT NULL DEFAULT 0,
		PackQty          INT           NOT NULL DEFAULT 0,
		PRIMARY KEY (StockCode)
	)`,
	`CREATE TABLE IF NOT EXISTS tblcategory (
		MajorNo          VARCHAR(16)  NOT NULL,
		MajorDescription VARCHAR(64)  NOT NULL DEFAULT '',
		PRIMARY KEY (MajorNo)
	)`,
	`CREATE TABLE IF NOT EXISTS tblpacksize (
		PackSize  INT NOT NULL,
		QtyPerBox INT NOT NULL DEFAULT 0,
		PRIMARY KEY (PackSize)
	)`,
}

// localSchema holds the per-site tables: order header/line/box, stores and
// users, goods-received notes, site stock, and the sync journal.
var localSchema = []string{
	`CREATE TABLE IF NOT EXISTS tblorder (
		OrderNo             VARCHAR(32) NOT NULL,
		DateTime            DATETIME    NOT NULL,
		StoreName           VARCHAR(64) NOT NULL,
		OrderComplete       TINYINT     NOT NULL DEFAULT 0,
		User                VARCHAR(64) NOT NULL DEFAULT '',
		Order_Approved_By   VARCHAR(64) NULL,
		Order_Approved_Date DATETIME    NULL,
		Order_Packed_By     VARCHAR(64) NULL,
		Order_Packed_Date   DATETIME    NULL,
		Order_Dispatch_By   VARCHAR(64) NULL,
		Order_Dispatched_Date DATETIME  NULL,
		Order_Rcvd_Date     DATETIME    NULL,
		PRIMARY KEY (OrderNo)
	)`,
	`CREATE TABLE IF NOT EXISTS tblorder_tran (
		OrderNo          VARCHAR(32)  NOT NULL,
		DateTime         DATETIME     NOT NULL,
		StockCode        VARCHAR(32)  NOT NULL DEFAULT '',
		StockDescription TEXT,
		MajorNo          VARCHAR(16)  NOT NULL DEFAULT '',
		MajorName        VARCHAR(64)  NOT NULL DEFAULT '',
		Sub1No           VARCHAR(16)  NOT NULL DEFAULT '',
		Sub1Name         VARCHAR(64)  NOT NULL DEFAULT '',
		Order_Qty        INT          NOT NULL DEFAULT 0,
		Rcvd_Qty         INT          NOT NULL DEFAULT 0,
		Amended_Qty      INT          NOT NULL DEFAULT 0,
		Final_Qty        INT          NOT NULL DEFAULT 0,
		Amended_Shop     VARCHAR(64)  NULL,
		PRIMARY KEY (OrderNo)
	)`,
	`CREATE TABLE IF NOT EXISTS tblorderboxinfo (
		OrderNo        VARCHAR(32) NOT NULL,
		StockCode      VARCHAR(32) NOT NULL,
		BoxNo          INT         NOT NULL,
		BoxCodeQty     INT         NOT NULL DEFAULT 0,
		BoxTotalQty    INT         NOT NULL DEFAULT 0,
		DoneAndPrinted TINYINT     NOT NULL DEFAULT 0,
		PRIMARY KEY (OrderNo, BoxNo)
	)`,
	`CREATE TABLE IF NOT EXISTS tblstores (
		id        INT AUTO_INCREMENT PRIMARY KEY,
		Storename VARCHAR(64) NOT NULL UNIQUE,
		userName  VARCHAR(64) NOT NULL DEFAULT '',
		Password  VARCHAR(128) NOT NULL DEFAULT '',
		PortNo    VARCHAR(8)  NOT NULL DEFAULT '3306',
		HostIP    VARCHAR(64) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS tblusers (
		id         INT AUTO_INCREMENT PRIMARY KEY,
		username   VARCHAR(64)  NOT NULL,
		Email      VARCHAR(128) NOT NULL UNIQUE,
		Password   VARCHAR(128) NOT NULL,
		Roles      VARCHAR(64)  NOT NULL DEFAULT '',
		Permission VARCHAR(64)  NOT NULL DEFAULT '',
		Created    DATETIME     NOT NULL,
		StoreName  VARCHAR(64)  NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tbluserstores (
		userId  INT NOT NULL,
		storeId INT NOT NULL,
		PRIMARY KEY (userId, storeId)
	)`,
	`CREATE TABLE IF NOT EXISTS tblgrn (
		GRVNumber      VARCHAR(32)   NOT NULL,
		OrderNo        VARCHAR(32)   NOT NULL,
		InvoiceNumber  VARCHAR(64)   NOT NULL DEFAULT '',
		SupplierCode   VARCHAR(32)   NOT NULL DEFAULT '',
		ShippingCharge DECIMAL(12,2) NOT NULL DEFAULT 0,
		HandlingCharge DECIMAL(12,2) NOT NULL DEFAULT 0,
		OtherCharge    DECIMAL(12,2) NOT NULL DEFAULT 0,
		SubTotal       DECIMAL(12,2) NOT NULL DEFAULT 0,
		DiscountAmount DECIMAL(12,2) NOT NULL DEFAULT 0,
		VATAmount      DECIMAL(12,2) NOT NULL DEFAULT 0,
		ReceivedBy     VARCHAR(64)   NOT NULL DEFAULT '',
		DateTime       DATETIME      NOT NULL,
		PRIMARY KEY (GRVNumber)
	)`,
	`CREATE TABLE IF NOT EXISTS tblgrn_tran (
		id            INT AUTO_INCREMENT PRIMARY KEY,
		GRVNumber     VARCHAR(32)   NOT NULL,
		StockCode     VARCHAR(32)   NOT NULL,
		QtyReceived   INT           NOT NULL DEFAULT 0,
		BonusQty      INT           NOT NULL DEFAULT 0,
		QtyOrdered    INT           NOT NULL DEFAULT 0,
		ExclUnitCost  DECIMAL(12,4) NOT NULL DEFAULT 0,
		InclUnitCost  DECIMAL(12,4) NOT NULL DEFAULT 0,
		Markup        DECIMAL(8,4)  NOT NULL DEFAULT 0,
		ExclSelling   DECIMAL(12,4) NOT NULL DEFAULT 0,
		InclSelling   DECIMAL(12,4) NOT NULL DEFAULT 0,
		VATPercentage DECIMAL(8,4)  NOT NULL DEFAULT 0,
		Discount1     DECIMAL(8,4)  NOT NULL DEFAULT 0,
		DiscountAmount DECIMAL(12,2) NOT NULL DEFAULT 0,
		VATAmount     DECIMAL(12,2) NOT NULL DEFAULT 0,
		SubTotal      DECIMAL(12,2) NOT NULL DEFAULT 0,
		LineTotal     DECIMAL(12,2) NOT NULL DEFAULT 0,
		KEY idx_grn_tran_grv (GRVNumber)
	)`,
	`CREATE TABLE IF NOT EXISTS tblproducts (
		StockCode        VARCHAR(32)  NOT NULL,
		StockDescription VARCHAR(256) NOT NULL DEFAULT '',
		MajorNo          VARCHAR(16)  NOT NULL DEFAULT '',
		Sub1No           VARCHAR(16)  NOT NULL DEFAULT '',
		StockOnHand      INT          NOT NULL DEFAULT 0,
		PackQty          INT          NOT NULL DEFAULT 0,
		PRIMARY KEY (StockCode)
	)`,
	`CREATE TABLE IF NOT EXISTS tblsync_journal (
		id         VARCHAR(36) NOT NULL,
		OrderNo    VARCHAR(32) NOT NULL,
		Transition VARCHAR(16) NOT NULL,
		LastStep   VARCHAR(64) NOT NULL DEFAULT '',
		StepIndex  INT         NOT NULL DEFAULT 0,
		TotalSteps INT         NOT NULL,
		UpdatedAt  DATETIME    NOT NULL,
		PRIMARY KEY (id),
		KEY idx_sync_journal_order (OrderNo)
	)`,
}

func seedCatalog(cloud *sqlx.DB) error {
	categories := []struct {
		MajorNo, MajorDescription string
	}{
		{"01", "Beverages"},
		{"02", "Dry Goods"},
		{"03", "Household"},
	}
	for _, c := range categories {
		if _, err := cloud.Exec(
			`INSERT IGNORE INTO tblcategory (MajorNo, MajorDescription) VALUES (?, ?)`,
			c.MajorNo, c.MajorDescription,
		); err != nil {
			return err
		}
	}

	packSizes := []struct {
		PackSize, QtyPerBox int
	}{
		{6, 6},
		{12, 12},
		{24, 24},
		{500, 20},
	}
	for _, p := range packSizes {
		if _, err := cloud.Exec(
			`INSERT IGNORE INTO tblpacksize (PackSize, QtyPerBox) VALUES (?, ?)`,
			p.PackSize, p.QtyPerBox,
		); err != nil {
			return err
		}
	}

	products := []struct {
		StockCode, StockDescription, MajorNo, Sub1No string
		StockOnHand, PackQty                         int
	}{
		{"BEV001", "Sparkling Water 500ml x 24", "01", "0101", 480, 24},
		{"BEV002", "Orange Juice 1L x 12", "01", "0102", 240, 12},
		{"DRY001", "Long Grain Rice 2kg x 6", "02", "0201", 120, 6},
		{"HSE001", "Dish Soap 750ml x 12", "03", "0301", 96, 0},
	}
	for _, p := range products {
		if _, err := cloud.Exec(
			`INSERT IGNORE INTO tblproducts
				(StockCode, StockDescription, MajorNo, Sub1No, StockOnHand, PackQty)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.StockCode, p.StockDescription, p.MajorNo, p.Sub1No, p.StockOnHand, p.PackQty,
		); err != nil {
			return err
		}
	}

	return nil
}

// seedLocalProducts mirrors the catalog rows into the site products table so
// receipt stock increments have rows to land on.
func seedLocalProducts(local *sqlx.DB) error {
	products := []struct {
		StockCode, StockDescription, MajorNo, Sub1No string
		PackQty                                      int
	}{
		{"BEV001", "Sparkling Water 500ml x 24", "01", "0101", 24},
		{"BEV002", "Orange Juice 1L x 12", "01", "0102", 12},
		{"DRY001", "Long Grain Rice 2kg x 6", "02", "0201", 6},
		{"HSE001", "Dish Soap 750ml x 12", "03", "0301", 0},
	}
	for _, p := range products {
		if _, err := local.Exec(
			`INSERT IGNORE INTO tblproducts
				(StockCode, StockDescription, MajorNo, Sub1No, StockOnHand, PackQty)
			VALUES (?, ?, ?, ?, 0, ?)`,
			p.StockCode, p.StockDescription, p.MajorNo, p.Sub1No, p.PackQty,
		); err != nil {
			return err
		}
	}
	return nil
}

func seedStores(local *sqlx.DB) error {
	stores := []struct {
		Storename, UserName, Password, PortNo, HostIP string
	}{
		{"MAINSTREET", "mainstreet", "mainstreet", "3306", "127.0.0.1"},
		{"RIVERSIDE", "riverside", "riverside", "3306", "127.0.0.1"},
	}
	for _, s := range stores {
		if _, err := local.Exec(
			`INSERT IGNORE INTO tblstores (Storename, userName, Password, PortNo, HostIP)
			VALUES (?, ?, ?, ?, ?)`,
			s.Storename, s.UserName, s.Password, s.PortNo, s.HostIP,
		); err != nil {
			return err
		}
	}
	return nil
}
