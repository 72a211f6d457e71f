package domain

import "github.com/shopspring/decimal"

// DefaultCatalog returns the storefront demo catalog
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:       1,
			Name:     "Wireless Bluetooth Headphones",
			Category: "Electronics",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("89.99"),
			Stock:    150,
			Sales:    []int{12, 15, 18, 22, 25, 30, 28, 32, 35, 40, 38, 42, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125, 130},
		},
		{
			ID:       2,
			Name:     "Smartphone X Pro",
			Category: "Electronics",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("999.99"),
			Stock:    75,
			Sales:    []int{5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120},
		},
		{
			ID:       3,
			Name:     "Organic Cotton T-Shirt",
			Category: "Clothing",
			Status:   ProductStatusOutOfStock,
			Price:    decimal.RequireFromString("24.99"),
			Stock:    0,
			Sales:    []int{20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125, 130, 135, 140, 145, 150, 155, 160, 165},
		},
		{
			ID:       4,
			Name:     "Stainless Steel Water Bottle",
			Category: "Home",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("19.99"),
			Stock:    200,
			Sales:    []int{8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125},
		},
		{
			ID:       5,
			Name:     "Premium Coffee Beans",
			Category: "Food",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("14.99"),
			Stock:    300,
			Sales:    []int{15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125, 130, 135, 140},
		},
		{
			ID:       6,
			Name:     "Yoga Mat",
			Category: "Fitness",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("29.99"),
			Stock:    90,
			Sales:    []int{5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120},
		},
		{
			ID:       7,
			Name:     "Wireless Charger",
			Category: "Electronics",
			Status:   ProductStatusOutOfStock,
			Price:    decimal.RequireFromString("34.99"),
			Stock:    0,
			Sales:    []int{10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125, 130},
		},
		{
			ID:       8,
			Name:     "Leather Wallet",
			Category: "Accessories",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("49.99"),
			Stock:    60,
			Sales:    []int{3, 5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115},
		},
		{
			ID:       9,
			Name:     "Smart Watch",
			Category: "Electronics",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("199.99"),
			Stock:    45,
			Sales:    []int{2, 3, 5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110},
		},
		{
			ID:       10,
			Name:     "Desk Lamp",
			Category: "Home",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("39.99"),
			Stock:    120,
			Sales:    []int{4, 6, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115},
		},
		{
			ID:       11,
			Name:     "Running Shoes",
			Category: "Footwear",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("79.99"),
			Stock:    85,
			Sales:    []int{7, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120, 125},
		},
		{
			ID:       12,
			Name:     "Backpack",
			Category: "Accessories",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("59.99"),
			Stock:    110,
			Sales:    []int{5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115, 120},
		},
		{
			ID:       13,
			Name:     "Blender",
			Category: "Kitchen",
			Status:   ProductStatusOutOfStock,
			Price:    decimal.RequireFromString("89.99"),
			Stock:    0,
			Sales:    []int{3, 5, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115},
		},
		{
			ID:       14,
			Name:     "Sunglasses",
			Category: "Accessories",
			Status:   ProductStatusInStock,
			Price:    decimal.RequireFromString("129.99"),
			Stock:    65,
			Sales:    []int{4, 6, 8, 10, 12, 15, 18, 20, 22, 25, 28, 30, 32, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100, 105, 110, 115},
		},
	}
}
