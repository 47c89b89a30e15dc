// internal/services/catalog_service_test.go
package services

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/minicart/minicart-backend/internal/models"
	"github.com/minicart/minicart-backend/internal/utils"
)

func (suite *ServiceTestSuite) TestListCategories() {
	categories, err := suite.catalog.ListCategories()
	suite.Require().NoError(err)
	suite.Empty(categories)
	suite.NotNil(categories)

	suite.createCategory("Shirts")
	suite.createCategory("Shoes")

	categories, err = suite.catalog.ListCategories()
	suite.Require().NoError(err)
	suite.Require().Len(categories, 2)
	suite.Equal("Shirts", categories[0].Name)
}

func (suite *ServiceTestSuite) TestGetCategoryNotFound() {
	_, err := suite.catalog.GetCategory(42)
	suite.requireKind(err, ErrNotFound)
}

func (suite *ServiceTestSuite) TestListProductsPagination() {
	category := suite.createCategory("Misc")
	for i := 1; i <= 25; i++ {
		suite.createProduct(fmt.Sprintf("Item %02d", i), "Thing", "1.00", category.ID)
	}

	params := ProductListParams{PaginationParams: utils.PaginationParams{Page: 3, PerPage: 10}}
	products, total, err := suite.catalog.ListProducts(params)
	suite.Require().NoError(err)
	suite.Equal(int64(25), total)
	suite.Len(products, 5)
	suite.Equal("Item 21", products[0].Name)

	result := utils.CreatePaginationResult(total, utils.NormalizePagination(params.PaginationParams))
	suite.Equal(3, result.Pages)
	suite.Equal(3, result.CurrentPage)

	params.Page = 4
	products, total, err = suite.catalog.ListProducts(params)
	suite.Require().NoError(err)
	suite.Equal(int64(25), total)
	suite.Empty(products)

	// Pages far past the end stay empty instead of wrapping the offset
	for _, page := range []int{math.MaxInt/10 + 1, math.MaxInt} {
		params.Page = page
		products, _, err = suite.catalog.ListProducts(params)
		suite.Require().NoError(err)
		suite.Empty(products, "page %d", page)
	}
}

func (suite *ServiceTestSuite) TestListProductsDefaults() {
	category := suite.createCategory("Misc")
	for i := 1; i <= 12; i++ {
		suite.createProduct(fmt.Sprintf("Item %02d", i), "Thing", "1.00", category.ID)
	}

	products, _, err := suite.catalog.ListProducts(ProductListParams{})
	suite.Require().NoError(err)
	suite.Len(products, utils.DefaultPerPage)
}

func (suite *ServiceTestSuite) TestListProductsSearchIsCaseInsensitiveOverNameAndTitle() {
	category := suite.createCategory("Clothes")
	suite.createProduct("Blue SHIRT", "Cotton", "10.00", category.ID)
	suite.createProduct("Jeans", "Denim shirtless look", "20.00", category.ID)
	suite.createProduct("Socks", "Wool", "5.00", category.ID)

	params := ProductListParams{PaginationParams: utils.PaginationParams{Search: "shirt"}}
	products, total, err := suite.catalog.ListProducts(params)
	suite.Require().NoError(err)

	suite.Equal(int64(2), total)
	suite.Require().Len(products, 2)
	suite.Equal("Blue SHIRT", products[0].Name)
	suite.Equal("Jeans", products[1].Name)
}

func (suite *ServiceTestSuite) TestListProductsByCategory() {
	shirts := suite.createCategory("Shirts")
	shoes := suite.createCategory("Shoes")
	suite.createProduct("Tee", "Tee", "10.00", shirts.ID)
	suite.createProduct("Boot", "Boot", "50.00", shoes.ID)
	suite.createProduct("Sandal", "Sandal", "20.00", shoes.ID)

	params := ProductListParams{CategoryID: &shoes.ID}
	products, total, err := suite.catalog.ListProducts(params)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	for _, p := range products {
		suite.Equal(shoes.ID, p.CategoryID)
	}

	params.Search = "boot"
	products, total, err = suite.catalog.ListProducts(params)
	suite.Require().NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal("Boot", products[0].Name)
}

func (suite *ServiceTestSuite) TestGetProductDetail() {
	category := suite.createCategory("Shirts")
	product := suite.createProduct("Tee", "Plain tee", "12.50", category.ID)
	suite.Require().NoError(suite.db.Model(product).Updates(map[string]interface{}{"rating": 3.5, "stock_quantity": 7}).Error)

	detail, err := suite.catalog.GetProduct(product.ID)
	suite.Require().NoError(err)

	suite.Equal("Shirts", detail.CategoryName)
	suite.True(decimal.RequireFromString("12.50").Equal(detail.Price))
	suite.Equal(3.5, detail.Rating)
	suite.Equal(7, detail.StockQuantity)
}

func (suite *ServiceTestSuite) TestGetProductRatingAveragesReviews() {
	category := suite.createCategory("Shirts")
	product := suite.createProduct("Tee", "Plain tee", "12.50", category.ID)
	user := suite.createUser("Rev", "rev@example.com", false)

	for _, rating := range []int{4, 5} {
		suite.Require().NoError(suite.db.Create(&models.Review{ProductID: product.ID, UserID: user.ID, Rating: rating}).Error)
	}

	detail, err := suite.catalog.GetProduct(product.ID)
	suite.Require().NoError(err)
	suite.Equal(4.5, detail.Rating)
}

func (suite *ServiceTestSuite) TestGetProductNotFound() {
	_, err := suite.catalog.GetProduct(1)
	suite.requireKind(err, ErrNotFound)
}
