package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrderLines(t *testing.T) {
	input := strings.Join([]string{
		"order_id,customer_email,order_date,first_payment,product_name,product_category,product_group,last_name,first_name,country,payment_status",
		"1001,Anna@Example.de,05.01.2024 10:30:00,\"49,90\",Starter Course,Course,Akademie1990,Muster,Anna,Germany,paid",
		"1002,gone@example.de,02.03.2024,20.00,Workbook,,,One,G,Austria,paid",
		"1003,broken@example.de,bad-date,not-a-number,Mystery,,,,,,",
	}, "\n")

	lines, err := readOrderLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 3)

	first := lines[0]
	assert.Equal(t, "Anna@Example.de", first.CustomerEmail)
	assert.Equal(t, "1001", first.OrderID)
	assert.Equal(t, "05.01.2024 10:30:00", first.OrderDate)
	require.NotNil(t, first.FirstPayment)
	assert.Equal(t, 49.90, *first.FirstPayment)
	require.NotNil(t, first.ProductCategory)
	assert.Equal(t, "Course", *first.ProductCategory)
	assert.Equal(t, "Akademie1990", first.ProductGroup)

	// Empty category stays nil, empty payment stays nil
	second := lines[1]
	assert.Nil(t, second.ProductCategory)
	require.NotNil(t, second.FirstPayment)
	assert.Equal(t, 20.0, *second.FirstPayment)

	// Unparseable payment is kept nil for the normalizer to drop
	third := lines[2]
	assert.Nil(t, third.FirstPayment)
	assert.Equal(t, "bad-date", third.OrderDate)
}

func TestReadOrderLines_ColumnOrderIndependent(t *testing.T) {
	input := strings.Join([]string{
		"customer_email,product_name,order_date,order_id",
		"a@b.de,Course,01.02.2024,42",
	}, "\n")

	lines, err := readOrderLines(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "42", lines[0].OrderID)
	assert.Equal(t, "Course", lines[0].ProductName)
}

func TestReadOrderLines_MissingEmailColumn(t *testing.T) {
	input := "order_id,order_date\n1,01.01.2024\n"

	_, err := readOrderLines(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_email")
}
