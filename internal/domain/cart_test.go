package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildValidation(t *testing.T) {
	sel := []IngredientSelection{{IngredientID: uuid.New(), Kind: ModifierIncluded}}

	_, err := NewBuild("My Za", Size("HUGE"), DefaultCrustStyle, DefaultCrustEdge, 1, sel)
	assert.Error(t, err)

	_, err = NewBuild("My Za", SizeMedium, "stuffed", DefaultCrustEdge, 1, sel)
	assert.Error(t, err)

	_, err = NewBuild("My Za", SizeMedium, DefaultCrustStyle, "chocolate", 1, sel)
	assert.Error(t, err)

	_, err = NewBuild("", SizeMedium, DefaultCrustStyle, DefaultCrustEdge, 1, sel)
	assert.Error(t, err)

	_, err = NewBuild("My Za", SizeMedium, DefaultCrustStyle, DefaultCrustEdge, 1,
		[]IngredientSelection{{IngredientID: uuid.New(), Kind: ModifierKind("MAYBE")}})
	assert.Error(t, err)

	build, err := NewBuild("My Za", SizeMedium, DefaultCrustStyle, DefaultCrustEdge, 0, sel)
	require.NoError(t, err)
	assert.Equal(t, 1, build.Quantity, "quantity defaults to one")
}

func TestNewBuildCollapsesDuplicateSelections(t *testing.T) {
	id := uuid.New()
	build, err := NewBuild("My Za", SizeSmall, DefaultCrustStyle, DefaultCrustEdge, 1,
		[]IngredientSelection{
			{IngredientID: id, Kind: ModifierIncluded},
			{IngredientID: id, Kind: ModifierExtra},
		})
	require.NoError(t, err)
	require.Len(t, build.Selections, 1)
	assert.Equal(t, ModifierExtra, build.Selections[0].Kind, "last toggle wins")
}

func TestBuildModifiersResolveExtraCharges(t *testing.T) {
	cheese, mushroom, ghost := uuid.New(), uuid.New(), uuid.New()
	catalog := map[uuid.UUID]Ingredient{
		cheese:   {ID: cheese, Name: "mozzarella", ExtraCharge: decimal.NewFromInt(3000)},
		mushroom: {ID: mushroom, Name: "mushroom", ExtraCharge: decimal.NewFromInt(2000)},
	}

	build, err := NewBuild("My Za", SizeMedium, DefaultCrustStyle, DefaultCrustEdge, 1,
		[]IngredientSelection{
			{IngredientID: cheese, Kind: ModifierExtra},
			{IngredientID: mushroom, Kind: ModifierExcluded},
			{IngredientID: ghost, Kind: ModifierExtra},
		})
	require.NoError(t, err)

	mods := build.Modifiers(catalog)
	require.Len(t, mods, 3)
	assert.True(t, decimal.NewFromInt(3000).Equal(mods[0].ExtraCharge))
	assert.True(t, mods[1].ExtraCharge.IsZero(), "EXCLUDED carries no charge")
	assert.True(t, mods[2].ExtraCharge.IsZero(), "unknown ingredient carries no charge")
}

func TestNewCartLineDerivesSubtotal(t *testing.T) {
	build, err := NewBuild("My Za", SizeMedium, DefaultCrustStyle, DefaultCrustEdge, 2, nil)
	require.NoError(t, err)

	unit := decimal.NewFromInt(31000)
	line := NewCartLine(uuid.New(), build, unit, nil)

	assert.True(t, decimal.NewFromInt(62000).Equal(line.Subtotal))
	assert.True(t, line.Subtotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))))
}

func TestRequantify(t *testing.T) {
	line := &CartLine{Quantity: 1, UnitPrice: decimal.NewFromInt(31000), Subtotal: decimal.NewFromInt(31000)}

	require.NoError(t, line.Requantify(3))
	assert.Equal(t, 3, line.Quantity)
	assert.True(t, decimal.NewFromInt(93000).Equal(line.Subtotal))

	assert.Error(t, line.Requantify(0))
	assert.Error(t, line.Requantify(-1))
}

func TestNewProductCartLine(t *testing.T) {
	product := &Product{ID: uuid.New(), Name: "Pepperoni Clasica", Price: decimal.NewFromInt(30000)}
	line := NewProductCartLine(uuid.New(), product, 2)

	require.NotNil(t, line.BaseProductID)
	assert.Equal(t, product.ID, *line.BaseProductID)
	assert.Equal(t, SizeMedium, line.Size)
	assert.Equal(t, DefaultCrustStyle, line.CrustStyle)
	assert.Equal(t, DefaultCrustEdge, line.CrustEdge)
	assert.True(t, decimal.NewFromInt(60000).Equal(line.Subtotal))
}

func TestCartTotal(t *testing.T) {
	lines := []*CartLine{
		{Subtotal: decimal.NewFromInt(62000)},
		{Subtotal: decimal.NewFromInt(22000)},
	}
	assert.True(t, decimal.NewFromInt(84000).Equal(CartTotal(lines)))
	assert.True(t, CartTotal(nil).IsZero())
}

func TestSnapshotLineDecouplesFromCart(t *testing.T) {
	productID := uuid.New()
	cartLine := &CartLine{
		ID:            uuid.New(),
		BaseProductID: &productID,
		DisplayName:   "My Za",
		Size:          SizeLarge,
		Quantity:      2,
		UnitPrice:     decimal.NewFromInt(35000),
		Subtotal:      decimal.NewFromInt(70000),
	}

	orderID := uuid.New()
	snap := SnapshotLine(orderID, cartLine)

	assert.Equal(t, orderID, snap.OrderID)
	assert.Equal(t, uuid.Nil, snap.ID, "snapshot gets fresh identity on insert")
	assert.Equal(t, cartLine.DisplayName, snap.DisplayName)
	assert.True(t, cartLine.Subtotal.Equal(snap.Subtotal))

	mods := SnapshotModifiers(uuid.New(), []LineModifier{
		{ID: uuid.New(), LineID: cartLine.ID, IngredientID: uuid.New(), Kind: ModifierExtra, ExtraCharge: decimal.NewFromInt(3000)},
	})
	require.Len(t, mods, 1)
	assert.Equal(t, uuid.Nil, mods[0].ID, "modifier copies are new rows, not references")
	assert.NotEqual(t, cartLine.ID, mods[0].LineID)
}
