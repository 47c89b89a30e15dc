// internal/services/export_service_test.go
package services

import (
	"bytes"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/minicart/minicart-backend/internal/models"
)

func (suite *ServiceTestSuite) TestExportProducts() {
	category := suite.createCategory("Shirts")
	suite.createProduct("Tee", "Plain tee", "10.50", category.ID)
	suite.createProduct("Polo", "Polo shirt", "20.00", category.ID)

	var buf bytes.Buffer
	suite.Require().NoError(suite.export.ExportProducts(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	suite.Require().NoError(err)
	suite.Require().Len(file.Sheets, 1)

	sheet := file.Sheets[0]
	suite.Equal(productSheet, sheet.Name)
	suite.Require().Len(sheet.Rows, 3)
	suite.Equal("Name", sheet.Rows[0].Cells[1].String())
	suite.Equal("Tee", sheet.Rows[1].Cells[1].String())
	suite.Equal("10.50", sheet.Rows[1].Cells[4].String())
	suite.Equal("Shirts", sheet.Rows[2].Cells[7].String())
}

func (suite *ServiceTestSuite) TestImportProducts() {
	category := suite.createCategory("Shirts")
	existing := suite.createProduct("Tee", "Plain tee", "10.50", category.ID)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(productSheet)
	suite.Require().NoError(err)

	addRow := func(values ...interface{}) {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetValue(v)
		}
	}
	addRow("ID", "Name", "Title", "Description", "Price", "Image", "CategoryID", "Category", "Rating", "StockQuantity")
	// update: new price only
	addRow(int(existing.ID), "", "", "", "8.00", "", "", "", "", "")
	// create
	addRow("", "Cap", "Baseball cap", "Red", "12.00", "", int(category.ID), "", "", 3)
	// invalid price
	addRow("", "Bad", "Bad", "", "abc", "", int(category.ID), "", "", "")
	// unknown category
	addRow("", "Lost", "Lost", "", "1.00", "", 999, "", "", "")

	var buf bytes.Buffer
	suite.Require().NoError(file.Write(&buf))

	result, err := suite.export.ImportProducts(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	suite.Require().NoError(err)
	suite.Equal(&ImportResult{Created: 1, Updated: 1, Skipped: 2}, result)

	var updated models.Product
	suite.Require().NoError(suite.db.First(&updated, existing.ID).Error)
	suite.True(decimal.RequireFromString("8.00").Equal(updated.Price))
	suite.Equal("Tee", updated.Name)

	var created models.Product
	suite.Require().NoError(suite.db.Where("name = ?", "Cap").First(&created).Error)
	suite.Equal(3, created.StockQuantity)
	suite.Equal(category.ID, created.CategoryID)
}

func (suite *ServiceTestSuite) TestImportRejectsNonWorkbook() {
	data := []byte("not a workbook")
	_, err := suite.export.ImportProducts(bytes.NewReader(data), int64(len(data)))
	suite.requireKind(err, ErrValidation)
}
