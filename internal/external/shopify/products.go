package shopify

import (
	"context"
	"fmt"

	"github.com/wonny/insight/internal/contracts"
)

const productsQuery = `
query FetchProducts($pageSize: Int!, $cursor: String) {
  products(first: $pageSize, after: $cursor, sortKey: TITLE) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        title
        productType
        vendor
      }
    }
  }
}`

type productsPage struct {
	Products struct {
		PageInfo pageInfo `json:"pageInfo"`
		Edges    []struct {
			Node Product `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

// Product is one catalog entry
type Product struct {
	Title       string `json:"title"`
	ProductType string `json:"productType"`
	Vendor      string `json:"vendor"`
}

// FetchProducts pulls the full product catalog page by page
func (c *Client) FetchProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	var cursor *string
	pages := 0

	for {
		variables := map[string]interface{}{
			"pageSize": c.pageSize,
		}
		if cursor != nil {
			variables["cursor"] = *cursor
		}

		var page productsPage
		if err := c.execute(ctx, productsQuery, variables, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch products page %d: %w", pages+1, err)
		}
		pages++

		for _, edge := range page.Products.Edges {
			products = append(products, edge.Node)
		}

		if !page.Products.PageInfo.HasNextPage {
			break
		}
		endCursor := page.Products.PageInfo.EndCursor
		cursor = &endCursor
	}

	c.logger.WithFields(map[string]interface{}{
		"pages":    pages,
		"products": len(products),
	}).Info("Product catalog fetch completed")

	return products, nil
}

// BackfillCategories fills missing categories and groups on raw lines
// from the catalog, matching by product title. Returns the number of
// lines touched.
func BackfillCategories(lines []contracts.RawOrderLine, products []Product) int {
	byTitle := make(map[string]Product, len(products))
	for _, p := range products {
		byTitle[p.Title] = p
	}

	filled := 0
	for i := range lines {
		p, ok := byTitle[lines[i].ProductName]
		if !ok {
			continue
		}
		touched := false
		if lines[i].ProductCategory == nil && p.ProductType != "" {
			productType := p.ProductType
			lines[i].ProductCategory = &productType
			touched = true
		}
		if lines[i].ProductGroup == "" && p.Vendor != "" {
			lines[i].ProductGroup = p.Vendor
			touched = true
		}
		if touched {
			filled++
		}
	}
	return filled
}
