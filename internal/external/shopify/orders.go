package shopify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/wonny/insight/internal/contracts"
)

const ordersQuery = `
query FetchOrders($pageSize: Int!, $cursor: String, $query: String) {
  orders(first: $pageSize, after: $cursor, query: $query, sortKey: CREATED_AT) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        name
        createdAt
        cancelledAt
        displayFinancialStatus
        customer {
          email
          firstName
          lastName
        }
        shippingAddress {
          country
        }
        lineItems(first: 50) {
          edges {
            node {
              title
              discountedTotalSet {
                shopMoney {
                  amount
                }
              }
              product {
                productType
                vendor
              }
            }
          }
        }
      }
    }
  }
}`

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type ordersPage struct {
	Orders struct {
		PageInfo pageInfo `json:"pageInfo"`
		Edges    []struct {
			Node orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type orderNode struct {
	Name                   string  `json:"name"`
	CreatedAt              string  `json:"createdAt"`
	CancelledAt            *string `json:"cancelledAt"`
	DisplayFinancialStatus string  `json:"displayFinancialStatus"`
	Customer               *struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"customer"`
	ShippingAddress *struct {
		Country string `json:"country"`
	} `json:"shippingAddress"`
	LineItems struct {
		Edges []struct {
			Node lineItemNode `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
}

type lineItemNode struct {
	Title              string `json:"title"`
	DiscountedTotalSet struct {
		ShopMoney struct {
			Amount string `json:"amount"`
		} `json:"shopMoney"`
	} `json:"discountedTotalSet"`
	Product *struct {
		ProductType string `json:"productType"`
		Vendor      string `json:"vendor"`
	} `json:"product"`
}

// FetchAllOrderLines pulls the full order history page by page and
// flattens every order into one raw line per line item. Cancelled
// orders are skipped.
func (c *Client) FetchAllOrderLines(ctx context.Context, createdAfter string) ([]contracts.RawOrderLine, error) {
	var lines []contracts.RawOrderLine
	var cursor *string
	pages := 0

	searchQuery := ""
	if createdAfter != "" {
		searchQuery = fmt.Sprintf("created_at:>=%s", createdAfter)
	}

	for {
		variables := map[string]interface{}{
			"pageSize": c.pageSize,
		}
		if cursor != nil {
			variables["cursor"] = *cursor
		}
		if searchQuery != "" {
			variables["query"] = searchQuery
		}

		var page ordersPage
		if err := c.execute(ctx, ordersQuery, variables, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch orders page %d: %w", pages+1, err)
		}
		pages++

		for _, edge := range page.Orders.Edges {
			lines = append(lines, flattenOrder(edge.Node)...)
		}

		c.logger.WithFields(map[string]interface{}{
			"page":        pages,
			"orders":      len(page.Orders.Edges),
			"total_lines": len(lines),
		}).Debug("Fetched orders page")

		if !page.Orders.PageInfo.HasNextPage {
			break
		}
		endCursor := page.Orders.PageInfo.EndCursor
		cursor = &endCursor
	}

	c.logger.WithFields(map[string]interface{}{
		"pages": pages,
		"lines": len(lines),
	}).Info("Order history fetch completed")

	return lines, nil
}

// flattenOrder expands one order into raw lines, one per line item
func flattenOrder(order orderNode) []contracts.RawOrderLine {
	if order.CancelledAt != nil {
		return nil
	}

	email := ""
	firstName := ""
	lastName := ""
	if order.Customer != nil {
		email = order.Customer.Email
		firstName = order.Customer.FirstName
		lastName = order.Customer.LastName
	}

	country := ""
	if order.ShippingAddress != nil {
		country = order.ShippingAddress.Country
	}

	var lines []contracts.RawOrderLine
	for _, edge := range order.LineItems.Edges {
		item := edge.Node

		var payment *float64
		if amount, err := strconv.ParseFloat(item.DiscountedTotalSet.ShopMoney.Amount, 64); err == nil {
			payment = &amount
		}

		var category *string
		group := ""
		if item.Product != nil {
			if item.Product.ProductType != "" {
				productType := item.Product.ProductType
				category = &productType
			}
			group = item.Product.Vendor
		}

		lines = append(lines, contracts.RawOrderLine{
			CustomerEmail:   email,
			OrderID:         order.Name,
			OrderDate:       order.CreatedAt,
			FirstPayment:    payment,
			ProductName:     item.Title,
			ProductCategory: category,
			ProductGroup:    group,
			LastName:        lastName,
			FirstName:       firstName,
			Country:         country,
			PaymentStatus:   order.DisplayFinancialStatus,
		})
	}
	return lines
}
