package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
	"github.com/gachisikyeo/gongu-gateway/internal/core/ports"
)

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var items []domain.Product
	if err := c.getJSON(ctx, "", "/api/products", "/api/products", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ProductsByCategory returns the catalog filtered to one category.
func (c *Client) ProductsByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	q := url.Values{"category": {string(category)}}
	var items []domain.Product
	if err := c.getJSON(ctx, "", "/api/products/category?"+q.Encode(), "/api/products/category", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// PopularProducts returns the curated popular list.
func (c *Client) PopularProducts(ctx context.Context) ([]domain.Product, error) {
	var items []domain.Product
	if err := c.getJSON(ctx, "", "/api/products/popular", "/api/products/popular", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Product returns one catalog item.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.getJSON(ctx, "", path, "/api/products/:id", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct registers a product via the multipart endpoint: a "data" part
// carrying the JSON payload plus an optional "image" file part.
func (c *Client) CreateProduct(ctx context.Context, sessionID string, in ports.ProductCreateInput, image *ports.FileInput) (*domain.Product, error) {
	contentType, body, err := encodeProductForm(in, image)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := c.postMultipart(ctx, sessionID, "/api/products", "/api/products", contentType, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GroupPurchases returns the campaigns running for one product.
func (c *Client) GroupPurchases(ctx context.Context, productID int64) ([]domain.GroupPurchase, error) {
	var items []domain.GroupPurchase
	path := fmt.Sprintf("/api/products/%d/group-purchases", productID)
	if err := c.getJSON(ctx, "", path, "/api/products/:id/group-purchases", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func encodeProductForm(in ports.ProductCreateInput, image *ports.FileInput) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	data, err := json.Marshal(in)
	if err != nil {
		return "", nil, fmt.Errorf("encode product payload: %w", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="data"`)
	header.Set("Content-Type", contentTypeJSON)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", nil, fmt.Errorf("build product form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", nil, fmt.Errorf("build product form: %w", err)
	}

	if image != nil {
		if err := writeFilePart(w, "image", *image); err != nil {
			return "", nil, err
		}
	}
	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("build product form: %w", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

func writeFilePart(w *multipart.Writer, field string, file ports.FileInput) error {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("build file part %s: %w", file.Name, err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return fmt.Errorf("build file part %s: %w", file.Name, err)
	}
	return nil
}

var _ ports.CatalogAPI = (*Client)(nil)
