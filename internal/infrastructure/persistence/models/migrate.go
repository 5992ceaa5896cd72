package models

// AllModels returns every persistence model in dependency order for
// AutoMigrate at startup.
func AllModels() []interface{} {
	return []interface{}{
		&ProductModel{},
		&CustomerModel{},
		&VendorModel{},
		&VendorStockModel{},
		&SaleModel{},
		&SaleItemModel{},
		&ItemAllocationModel{},
		&SubBillModel{},
		&SubBillItemModel{},
		&PurchaseModel{},
		&PurchaseItemModel{},
		&StockClosingModel{},
		&StockClosingLineModel{},
		&LedgerEntryModel{},
		&CashbookEntryModel{},
		&CreditPaymentModel{},
		&AuditLogModel{},
	}
}
