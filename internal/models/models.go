package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	Categories   = []string{"headphones", "earbuds", "earphones", "wireless", "gaming"}
	Connectivity = []string{"wireless", "wired", "bluetooth"}
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Discount is a display string such as "20%". Numeric JSON values are
// accepted and kept in their decimal form.
type Discount string

func (d *Discount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Discount(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*d = Discount(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

type Product struct {
	ID                string   `json:"_id"`
	Name              string   `json:"name"`
	Image             string   `json:"image,omitempty"`
	Price             float64  `json:"price"`
	Brand             string   `json:"brand"`
	Model             string   `json:"model,omitempty"`
	Category          string   `json:"category"`
	Connectivity      string   `json:"connectivity,omitempty"`
	Description       string   `json:"description,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	Discount          Discount `json:"discount,omitempty"`
	NoiseCancellation bool     `json:"noiseCancellation,omitempty"`
	Available         int      `json:"available"`
}

// ProductDraft is a validated product submitted by an admin.
type ProductDraft struct {
	Name         string
	Brand        string
	Model        string
	Price        float64
	Category     string
	Connectivity string
	Description  string
	Available    int
}

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID          string      `json:"_id"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
