package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysAdmin{},
	&SysOprLog{},
	// Catalog
	&Listing{},
	&ListingImage{},
	&Inquiry{},
}
