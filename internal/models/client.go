package models

// Client represents a customer that invoices are issued to.
// Deleting a client with invoices is rejected at the handler level;
// the foreign key on facturas.cliente_id restricts it at the DB too.
type Client struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nombre    string `gorm:"size:120;not null" json:"nombre"`
	Direccion string `gorm:"size:200" json:"direccion,omitempty"`
	Telefono  string `gorm:"size:50" json:"telefono,omitempty"`
	Email     string `gorm:"size:120" json:"email,omitempty"`

	Facturas []Invoice `gorm:"foreignKey:ClienteID" json:"facturas,omitempty"`
}

func (Client) TableName() string { return "clientes" }
