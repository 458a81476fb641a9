package model

// ProductRecord is one entry of the catalog document.
type ProductRecord struct {
	Type              string   `json:"type"`
	ProductID         string   `json:"product_id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	QuantityAvailable int      `json:"quantity_available"`
	Weight            *float64 `json:"weight,omitempty"`
	DownloadLink      string   `json:"download_link,omitempty"`
}

// LineRecord is one entry of the cart document.
type LineRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
