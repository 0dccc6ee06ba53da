package journey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/insight/internal/contracts"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func line(email, orderID string, date time.Time, product, category string) contracts.OrderLine {
	return contracts.OrderLine{
		CustomerEmail:   email,
		OrderID:         orderID,
		OrderDate:       date,
		FirstPayment:    10,
		ProductName:     product,
		ProductCategory: category,
	}
}

func TestReconstruct_SingleCustomer(t *testing.T) {
	r := New(nil, " › ")

	lines := []contracts.OrderLine{
		line("a@b.de", "o-2", day(5), "Starter Kit", "kit"),
		line("a@b.de", "o-1", day(1), "Intro Course", "course"),
		line("a@b.de", "o-3", day(9), "Annual Plan", "subscription"),
	}

	journeys := r.Reconstruct(lines)
	require.Len(t, journeys, 1)

	j := journeys["a@b.de"]
	assert.True(t, day(1).Equal(j.FirstPurchaseDate))
	assert.Equal(t, "Intro Course", j.FirstProduct)
	assert.True(t, day(9).Equal(j.LastPurchaseDate))
	assert.Equal(t, "course › kit › subscription", j.ProductSequence)
	assert.False(t, j.BoughtFlaggedCategory)
}

func TestReconstruct_OrderIndependent(t *testing.T) {
	r := New(nil, " › ")

	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", day(1), "First", "x"),
		line("a@b.de", "o-2", day(2), "Second", "y"),
	}
	reversed := []contracts.OrderLine{lines[1], lines[0]}

	assert.Equal(t, r.Reconstruct(lines), r.Reconstruct(reversed))
}

func TestReconstruct_EmptyCategoriesKeptAsEmptyTokens(t *testing.T) {
	r := New(nil, " › ")

	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", day(1), "First", ""),
		line("a@b.de", "o-2", day(2), "Second", "course"),
		line("a@b.de", "o-3", day(3), "Third", ""),
	}

	journeys := r.Reconstruct(lines)
	assert.Equal(t, " › course › ", journeys["a@b.de"].ProductSequence)
}

func TestReconstruct_FlaggedMembership(t *testing.T) {
	r := New([]string{"Akademie1990", "AKADEMIE"}, " › ")

	lines := []contracts.OrderLine{
		line("flagged@b.de", "o-1", day(1), "Academy Pack", "bundle"),
		line("plain@b.de", "o-2", day(1), "Starter", "kit"),
	}
	lines[0].ProductGroup = "AKADEMIE"

	journeys := r.Reconstruct(lines)
	assert.True(t, journeys["flagged@b.de"].BoughtFlaggedCategory)
	assert.False(t, journeys["plain@b.de"].BoughtFlaggedCategory)
}

func TestReconstruct_FlaggedViaCategory(t *testing.T) {
	r := New([]string{"Akademie 3750"}, " › ")

	lines := []contracts.OrderLine{
		line("a@b.de", "o-1", day(1), "Academy", "Akademie 3750"),
	}

	journeys := r.Reconstruct(lines)
	assert.True(t, journeys["a@b.de"].BoughtFlaggedCategory)
}

func TestReconstruct_MultipleCustomers(t *testing.T) {
	r := New(nil, " › ")

	lines := []contracts.OrderLine{
		line("b@b.de", "o-3", day(7), "Late", "l"),
		line("a@b.de", "o-1", day(1), "Early", "e"),
		line("b@b.de", "o-2", day(3), "Mid", "m"),
	}

	journeys := r.Reconstruct(lines)
	require.Len(t, journeys, 2)
	assert.Equal(t, "Early", journeys["a@b.de"].FirstProduct)
	assert.Equal(t, "Mid", journeys["b@b.de"].FirstProduct)
	assert.True(t, day(7).Equal(journeys["b@b.de"].LastPurchaseDate))
}

func TestReconstruct_Empty(t *testing.T) {
	r := New(nil, " › ")
	assert.Empty(t, r.Reconstruct(nil))
}
