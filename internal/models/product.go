package models

import "time"

type Product struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	Category    string  `gorm:"size:50" json:"category"`

	Active   bool   `gorm:"default:true" json:"active"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index:idx_cart_user_product,unique" json:"user_id"`

	ProductID uint    `gorm:"index:idx_cart_user_product,unique" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	Quantity int `gorm:"default:1" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type WishlistItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index:idx_wish_user_product,unique" json:"user_id"`

	ProductID uint    `gorm:"index:idx_wish_user_product,unique" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	SalonID uint `gorm:"index" json:"salon_id"`

	Total  float64 `json:"total"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`

	Payment PaymentInfo `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"index" json:"order_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
