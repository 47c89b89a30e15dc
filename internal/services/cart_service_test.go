// internal/services/cart_service_test.go
package services

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
)

func (suite *ServiceTestSuite) TestGetCartWithoutCartIsEmpty() {
	user := suite.createUser("Eve", "eve@example.com", false)

	cart, err := suite.cart.GetCart(user.ID)
	suite.Require().NoError(err)
	suite.NotNil(cart.Items)
	suite.Empty(cart.Items)
	suite.True(cart.Total.IsZero())
	suite.Equal(int64(0), suite.count(&models.ShoppingCart{}))
}

func (suite *ServiceTestSuite) TestAddItemMergesQuantity() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	first := suite.addToCart(user.ID, product.ID, 2)
	suite.Equal(2, first.Quantity)
	suite.True(decimal.RequireFromString("10.50").Equal(first.PriceAtTime))

	second := suite.addToCart(user.ID, product.ID, 1)
	suite.Equal(first.ID, second.ID)
	suite.Equal(3, second.Quantity)

	suite.Equal(int64(1), suite.count(&models.ShoppingCart{}))
	suite.Equal(int64(1), suite.count(&models.CartItem{}))

	cart, err := suite.cart.GetCart(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.Equal(3, cart.Items[0].Quantity)
	suite.Equal("Mug", cart.Items[0].Product.Name)
	suite.True(decimal.RequireFromString("31.50").Equal(cart.Total))
}

func (suite *ServiceTestSuite) TestAddItemDefaultsToQuantityOne() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	item, err := suite.cart.AddItem(user.ID, &AddCartItemRequest{ProductID: &product.ID})
	suite.Require().NoError(err)
	suite.Equal(1, item.Quantity)
}

func (suite *ServiceTestSuite) TestAddItemValidation() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	_, err := suite.cart.AddItem(user.ID, &AddCartItemRequest{})
	serviceErr := suite.requireKind(err, ErrValidation)
	suite.Equal(i18n.KeyProductIDRequired, serviceErr.Key)

	zero := 0
	_, err = suite.cart.AddItem(user.ID, &AddCartItemRequest{ProductID: &product.ID, Quantity: &zero})
	suite.requireKind(err, ErrValidation)

	missing := uint(999)
	_, err = suite.cart.AddItem(user.ID, &AddCartItemRequest{ProductID: &missing})
	suite.requireKind(err, ErrNotFound)

	// Failed adds leave no cart behind
	suite.Equal(int64(0), suite.count(&models.ShoppingCart{}))
}

func (suite *ServiceTestSuite) TestPriceSnapshotSurvivesPriceChange() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	suite.addToCart(user.ID, product.ID, 1)
	suite.Require().NoError(suite.db.Model(product).Update("price", decimal.RequireFromString("99.00")).Error)

	cart, err := suite.cart.GetCart(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(cart.Items, 1)
	suite.True(decimal.RequireFromString("10.50").Equal(cart.Items[0].PriceAtTime))
	suite.True(decimal.RequireFromString("99.00").Equal(cart.Items[0].Product.Price))
}

func (suite *ServiceTestSuite) TestUpdateItemOverwritesQuantity() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	item := suite.addToCart(user.ID, product.ID, 2)

	five := 5
	updated, err := suite.cart.UpdateItem(user.ID, item.ID, &UpdateCartItemRequest{Quantity: &five})
	suite.Require().NoError(err)
	suite.Equal(5, updated.Quantity)

	var stored models.CartItem
	suite.Require().NoError(suite.db.First(&stored, item.ID).Error)
	suite.Equal(5, stored.Quantity)
}

func (suite *ServiceTestSuite) TestUpdateItemChecks() {
	owner := suite.createUser("Eve", "eve@example.com", false)
	other := suite.createUser("Mallory", "mallory@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	item := suite.addToCart(owner.ID, product.ID, 2)

	_, err := suite.cart.UpdateItem(owner.ID, item.ID, &UpdateCartItemRequest{})
	suite.requireKind(err, ErrValidation)

	negative := -1
	_, err = suite.cart.UpdateItem(owner.ID, item.ID, &UpdateCartItemRequest{Quantity: &negative})
	suite.requireKind(err, ErrValidation)

	one := 1
	_, err = suite.cart.UpdateItem(owner.ID, 999, &UpdateCartItemRequest{Quantity: &one})
	suite.requireKind(err, ErrNotFound)

	_, err = suite.cart.UpdateItem(other.ID, item.ID, &UpdateCartItemRequest{Quantity: &one})
	suite.requireKind(err, ErrForbidden)

	var stored models.CartItem
	suite.Require().NoError(suite.db.First(&stored, item.ID).Error)
	suite.Equal(2, stored.Quantity)
}

func (suite *ServiceTestSuite) TestRemoveItem() {
	owner := suite.createUser("Eve", "eve@example.com", false)
	other := suite.createUser("Mallory", "mallory@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	item := suite.addToCart(owner.ID, product.ID, 2)

	err := suite.cart.RemoveItem(other.ID, item.ID)
	suite.requireKind(err, ErrForbidden)
	suite.Equal(int64(1), suite.count(&models.CartItem{}))

	suite.Require().NoError(suite.cart.RemoveItem(owner.ID, item.ID))
	suite.Equal(int64(0), suite.count(&models.CartItem{}))

	err = suite.cart.RemoveItem(owner.ID, item.ID)
	suite.requireKind(err, ErrNotFound)
}

func (suite *ServiceTestSuite) TestCartQuantityIsBounded() {
	user := suite.createUser("Eve", "eve@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	huge := math.MaxInt
	_, err := suite.cart.AddItem(user.ID, &AddCartItemRequest{ProductID: &product.ID, Quantity: &huge})
	suite.requireKind(err, ErrValidation)

	item := suite.addToCart(user.ID, product.ID, MaxCartQuantity)

	// A merge past the bound is rejected and leaves the line as it was
	one := 1
	_, err = suite.cart.AddItem(user.ID, &AddCartItemRequest{ProductID: &product.ID, Quantity: &one})
	serviceErr := suite.requireKind(err, ErrValidation)
	suite.Equal(i18n.KeyCartInvalidQuantity, serviceErr.Key)

	var stored models.CartItem
	suite.Require().NoError(suite.db.First(&stored, item.ID).Error)
	suite.Equal(MaxCartQuantity, stored.Quantity)

	tooMany := MaxCartQuantity + 1
	_, err = suite.cart.UpdateItem(user.ID, item.ID, &UpdateCartItemRequest{Quantity: &tooMany})
	suite.requireKind(err, ErrValidation)
}
