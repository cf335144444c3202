package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Ambrose2002/the-gem-shop/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Title", "Slug", "Description", "PriceCents",
			"Stock", "Status", "Categories", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.PriceCents)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(string(p.Status))

			var names []string
			for _, cat := range p.Categories {
				names = append(names, cat.Name)
			}
			row.AddCell().SetValue(strings.Join(names, ","))

			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

// POST /admin/products/import, multipart field "file".
// Rows with an existing ID update that product; blank IDs create new rows.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			id := get(0)
			title := get(1)
			description := get(3)
			priceCents, err1 := strconv.ParseInt(get(4), 10, 64)
			stock, err2 := strconv.Atoi(get(5))
			status := models.ProductStatus(get(6))
			categoryNames := get(7)

			if title == "" || err1 != nil || err2 != nil || priceCents < 0 || stock < 0 {
				skippedCount++
				continue
			}
			if status != models.ProductStatusDraft && status != models.ProductStatusPublished {
				status = models.ProductStatusDraft
			}

			var categories []models.Category
			for _, part := range strings.Split(categoryNames, ",") {
				name := strings.TrimSpace(part)
				if name == "" {
					continue
				}
				var cat models.Category
				if err := db.Where("name = ?", name).First(&cat).Error; err == nil {
					categories = append(categories, cat)
				}
			}

			if id != "" {
				var existing models.Product
				if err := db.First(&existing, "id = ?", id).Error; err == nil {
					existing.Title = title
					existing.Description = description
					existing.PriceCents = priceCents
					existing.Stock = stock
					existing.Status = status

					if err := db.Model(&existing).Association("Categories").Replace(categories); err != nil {
						skippedCount++
						continue
					}
					if err := db.Save(&existing).Error; err == nil {
						updatedCount++
						continue
					}
					skippedCount++
					continue
				}
			}

			product := models.Product{
				Title:       title,
				Slug:        ensureUniqueSlug(db, baseSlugFromTitle(title)),
				Description: description,
				PriceCents:  priceCents,
				Stock:       stock,
				Status:      status,
				Categories:  categories,
			}
			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
