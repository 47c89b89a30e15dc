// internal/services/order_service_test.go
package services

import (
	"github.com/shopspring/decimal"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/models"
)

func (suite *ServiceTestSuite) TestPlaceOrder() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	mug := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	pen := suite.createProduct("Pen", "Pen", "2.25", category.ID)

	suite.addToCart(user.ID, mug.ID, 2)
	suite.addToCart(user.ID, pen.ID, 3)

	// Price changes after adding do not affect the order total
	suite.Require().NoError(suite.db.Model(mug).Update("price", decimal.RequireFromString("50.00")).Error)

	order, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	suite.Require().NoError(err)

	suite.True(decimal.RequireFromString("27.75").Equal(order.TotalAmount), order.TotalAmount.String())
	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Equal("1 Main St", order.BillingAddress)
	suite.Len(order.Items, 2)

	var items []models.OrderItem
	suite.Require().NoError(suite.db.Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error)
	suite.Require().Len(items, 2)
	suite.Equal(mug.ID, items[0].ProductID)
	suite.Equal(2, items[0].Quantity)
	suite.True(decimal.RequireFromString("10.50").Equal(items[0].Price))

	var cart models.ShoppingCart
	suite.Require().NoError(suite.db.Where("user_id = ?", user.ID).First(&cart).Error)
	suite.Equal(models.CartStatusCheckedOut, cart.Status)
}

func (suite *ServiceTestSuite) TestPlaceOrderKeepsBillingAddress() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	suite.addToCart(user.ID, product.ID, 1)

	order, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St", BillingAddress: "PO Box 9"})
	suite.Require().NoError(err)
	suite.Equal("PO Box 9", order.BillingAddress)
}

func (suite *ServiceTestSuite) TestPlaceOrderWithoutCartFails() {
	user := suite.createUser("Frank", "frank@example.com", false)

	_, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	serviceErr := suite.requireKind(err, ErrValidation)
	suite.Equal(i18n.KeyCartEmpty, serviceErr.Key)

	suite.Equal(int64(0), suite.count(&models.Order{}))
	suite.Equal(int64(0), suite.count(&models.OrderItem{}))
}

func (suite *ServiceTestSuite) TestPlaceOrderWithEmptyCartFails() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	item := suite.addToCart(user.ID, product.ID, 1)
	suite.Require().NoError(suite.cart.RemoveItem(user.ID, item.ID))

	_, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	suite.requireKind(err, ErrValidation)

	suite.Equal(int64(0), suite.count(&models.Order{}))
	var cart models.ShoppingCart
	suite.Require().NoError(suite.db.Where("user_id = ?", user.ID).First(&cart).Error)
	suite.Equal(models.CartStatusActive, cart.Status)
}

func (suite *ServiceTestSuite) TestPlaceOrderRequiresShippingAddress() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	suite.addToCart(user.ID, product.ID, 1)

	_, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "   "})
	serviceErr := suite.requireKind(err, ErrValidation)
	suite.Equal(i18n.KeyOrderShippingRequired, serviceErr.Key)
	suite.Equal(int64(0), suite.count(&models.Order{}))
}

func (suite *ServiceTestSuite) TestPlaceOrderRollsBackOnFailure() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	suite.addToCart(user.ID, product.ID, 1)

	// Order lines cannot be written, so the order header must not survive either.
	suite.Require().NoError(suite.db.Exec("DROP TABLE order_items").Error)

	_, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	suite.Require().Error(err)

	suite.Equal(int64(0), suite.count(&models.Order{}))
	var cart models.ShoppingCart
	suite.Require().NoError(suite.db.Where("user_id = ?", user.ID).First(&cart).Error)
	suite.Equal(models.CartStatusActive, cart.Status)
}

func (suite *ServiceTestSuite) TestAddAfterCheckoutStartsFreshCart() {
	user := suite.createUser("Frank", "frank@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	first := suite.addToCart(user.ID, product.ID, 1)

	_, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	suite.Require().NoError(err)

	second := suite.addToCart(user.ID, product.ID, 1)
	suite.NotEqual(first.CartID, second.CartID)
	suite.Equal(1, second.Quantity)
	suite.Equal(int64(2), suite.count(&models.ShoppingCart{}))

	cart, err := suite.cart.GetCart(user.ID)
	suite.Require().NoError(err)
	suite.Len(cart.Items, 1)
}

func (suite *ServiceTestSuite) TestListOrdersNewestFirst() {
	user := suite.createUser("Frank", "frank@example.com", false)
	other := suite.createUser("Grace", "grace@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)

	var ids []uint
	for i := 0; i < 3; i++ {
		suite.addToCart(user.ID, product.ID, 1)
		order, err := suite.orders.PlaceOrder(user.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
		suite.Require().NoError(err)
		ids = append(ids, order.ID)
	}
	suite.addToCart(other.ID, product.ID, 1)
	_, err := suite.orders.PlaceOrder(other.ID, &PlaceOrderRequest{ShippingAddress: "2 Side St"})
	suite.Require().NoError(err)

	orders, err := suite.orders.ListOrders(user.ID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 3)
	suite.Equal(ids[2], orders[0].ID)
	suite.Equal(ids[0], orders[2].ID)
}

func (suite *ServiceTestSuite) TestGetOrder() {
	owner := suite.createUser("Frank", "frank@example.com", false)
	other := suite.createUser("Grace", "grace@example.com", false)
	category := suite.createCategory("Misc")
	product := suite.createProduct("Mug", "Mug", "10.50", category.ID)
	suite.addToCart(owner.ID, product.ID, 2)
	order, err := suite.orders.PlaceOrder(owner.ID, &PlaceOrderRequest{ShippingAddress: "1 Main St"})
	suite.Require().NoError(err)

	detail, err := suite.orders.GetOrder(owner.ID, order.ID)
	suite.Require().NoError(err)
	suite.Require().Len(detail.Items, 1)
	suite.Equal("Mug", detail.Items[0].Product.Name)
	suite.Equal(2, detail.Items[0].Quantity)

	_, err = suite.orders.GetOrder(other.ID, order.ID)
	suite.requireKind(err, ErrForbidden)

	_, err = suite.orders.GetOrder(owner.ID, 999)
	suite.requireKind(err, ErrNotFound)
}
