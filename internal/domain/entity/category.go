package entity

// Category categoría de producto (referencia).
type Category struct {
	ID   int
	Name string
}
