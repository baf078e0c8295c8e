package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/primehomes/primehomes/internal/webserver"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func registerExportRoutes() {
	webserver.ApiGET("/export/listings.csv", exportListingsCSV)
	webserver.ApiGET("/export/listings.xlsx", exportListingsXLSX)
	webserver.ApiGET("/export/inquiries.csv", exportInquiriesCSV)
}

// pricePrinter renders grouped decimal prices for export sheets
var pricePrinter = message.NewPrinter(language.English)

type listingExportRow struct {
	ID        int64   `csv:"id"`
	Title     string  `csv:"title"`
	Kind      string  `csv:"kind"`
	Category  string  `csv:"category"`
	City      string  `csv:"city"`
	Location  string  `csv:"location"`
	Price     float64 `csv:"price"`
	Bedrooms  int     `csv:"bedrooms"`
	Bathrooms int     `csv:"bathrooms"`
	AreaSqm   float64 `csv:"area_sqm"`
	Featured  bool    `csv:"featured"`
	Status    string  `csv:"status"`
	CreatedAt string  `csv:"created_at"`
}

func fetchListingRows(c echo.Context) ([]listingExportRow, error) {
	listings, err := GetApp(c).Listings().List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	rows := make([]listingExportRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, listingExportRow{
			ID: l.ID, Title: l.Title, Kind: l.Kind, Category: l.Category,
			City: l.City, Location: l.Location, Price: l.Price,
			Bedrooms: l.Bedrooms, Bathrooms: l.Bathrooms, AreaSqm: l.AreaSqm,
			Featured: l.Featured, Status: l.Status,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func exportListingsCSV(c echo.Context) error {
	rows, err := fetchListingRows(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export listings", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listings.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response().Writer)
}

func exportListingsXLSX(c echo.Context) error {
	rows, err := fetchListingRows(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export listings", err.Error())
	}

	const sheet = "Sheet1"
	xlsx := excelize.NewFile()
	headers := []string{"ID", "Title", "Kind", "Category", "City", "Price", "Bedrooms", "Bathrooms", "Area (sqm)", "Featured", "Status", "Created"}
	for i, h := range headers {
		xlsx.SetCellValue(sheet, fmt.Sprintf("%s1", columnName(i)), h)
	}
	for i, row := range rows {
		r := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.ID)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Title)
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Kind)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Category)
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.City)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", r), pricePrinter.Sprintf("%.2f", row.Price))
		xlsx.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.Bedrooms)
		xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.Bathrooms)
		xlsx.SetCellValue(sheet, fmt.Sprintf("I%d", r), row.AreaSqm)
		xlsx.SetCellValue(sheet, fmt.Sprintf("J%d", r), row.Featured)
		xlsx.SetCellValue(sheet, fmt.Sprintf("K%d", r), row.Status)
		xlsx.SetCellValue(sheet, fmt.Sprintf("L%d", r), row.CreatedAt)
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="listings.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return xlsx.Write(c.Response().Writer)
}

func columnName(i int) string {
	return string(rune('A' + i))
}

type inquiryExportRow struct {
	ID        int64  `csv:"id"`
	ListingID string `csv:"listing_id"`
	Name      string `csv:"name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
	Message   string `csv:"message"`
	Status    string `csv:"status"`
	CreatedAt string `csv:"created_at"`
}

func exportInquiriesCSV(c echo.Context) error {
	inquiries, err := GetApp(c).Inquiries().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to export inquiries", err.Error())
	}
	rows := make([]inquiryExportRow, 0, len(inquiries))
	for _, q := range inquiries {
		listingID := ""
		if q.ListingID != nil {
			listingID = fmt.Sprintf("%d", *q.ListingID)
		}
		rows = append(rows, inquiryExportRow{
			ID: q.ID, ListingID: listingID, Name: q.Name, Email: q.Email,
			Phone: q.Phone, Message: q.Message, Status: q.Status,
			CreatedAt: q.CreatedAt.Format(time.RFC3339),
		})
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="inquiries.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response().Writer)
}
