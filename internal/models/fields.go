package models

// Normalized field names produced by the table parser.
const (
	FieldArticleCode        = "CodeArticle"
	FieldArticleFamily      = "Famille"
	FieldArticleSupplier    = "Fournisseur"
	FieldArticleDesignation = "Designation"
	FieldStockQuantity      = "StockQuantity"

	FieldPriceBase            = "PrixHTPrincipal"
	FieldPriceHomeHairdresser = "PrixCoiffeurDomicile"
	FieldPricePublic          = "PrixToutPublic"
	FieldPriceRobin           = "PrixRobin"

	FieldClientCode           = "Code"
	FieldClientName           = "Nom"
	FieldClientSector         = "Secteur"
	FieldClientTariffCategory = "Catégorie tarifaire"
	FieldClientAddress        = "Adresse"
	FieldClientCity           = "Commune"
	FieldClientEmail          = "Email"
)
