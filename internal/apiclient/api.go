package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/soundplus/storefront/internal/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.Get(ctx, "/products", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var out models.Product
	if err := c.Get(ctx, "/products/"+url.PathEscape(id), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddProduct posts draft as multipart form data. The image part is only
// present when image is non-nil.
func (c *Client) AddProduct(ctx context.Context, token string, draft models.ProductDraft, image *FilePart) (*models.Product, error) {
	form := &Multipart{
		Fields: []Field{
			{Name: "name", Value: draft.Name},
			{Name: "price", Value: strconv.FormatFloat(draft.Price, 'f', -1, 64)},
			{Name: "description", Value: draft.Description},
			{Name: "category", Value: draft.Category},
			{Name: "brand", Value: draft.Brand},
			{Name: "model", Value: draft.Model},
			{Name: "connectivity", Value: draft.Connectivity},
			{Name: "available", Value: strconv.Itoa(draft.Available)},
		},
	}
	if image != nil {
		img := *image
		if img.Field == "" {
			img.Field = "image"
		}
		form.File = &img
	}

	var out models.Product
	if err := c.PostMultipart(ctx, "/add-product", token, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.Delete(ctx, "/delete-product/"+url.PathEscape(id), token, nil)
}

func (c *Client) ListOrders(ctx context.Context, token, userID string) ([]models.Order, error) {
	var out []models.Order
	if err := c.Get(ctx, "/orders/"+url.PathEscape(userID), token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type LoginResponse struct {
	Token string
	User  models.User
}

type loginPayload struct {
	Token string `json:"token"`
	User  struct {
		ID       string      `json:"id"`
		MongoID  string      `json:"_id"`
		Username string      `json:"username"`
		Role     models.Role `json:"role"`
	} `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var p loginPayload
	body := map[string]string{"email": email, "password": password}
	if err := c.PostJSON(ctx, "/login", "", body, &p); err != nil {
		return nil, err
	}
	id := p.User.ID
	if id == "" {
		id = p.User.MongoID
	}
	role := p.User.Role
	if role == "" {
		role = models.RoleUser
	}
	return &LoginResponse{
		Token: p.Token,
		User:  models.User{ID: id, Username: p.User.Username, Role: role},
	}, nil
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.PostJSON(ctx, "/register", "", body, nil)
}

func (c *Client) Health(ctx context.Context) error {
	return c.Get(ctx, "/health", "", nil)
}
