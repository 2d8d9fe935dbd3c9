package resultsController

import (
	"fmt"
	"log"
	"time"

	"campus/database"
	"campus/middleware"
	"campus/models"
	"campus/models/curriculum"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm/clause"
)

// RecordResult upserts a student's result for a unit. One row per
// (student, unit); re-recording overwrites.
func RecordResult(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	reqData := new(struct {
		StudentID uint   `json:"student_id"`
		Score     int    `json:"score"`
		Remarks   string `json:"remarks"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.StudentID == 0 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "student_id is required!", nil)
	}
	if reqData.Score < 0 || reqData.Score > 100 {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Score must be between 0 and 100!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	if err := db.Where("student_id = ? AND unit_id = ?", reqData.StudentID, unit.ID).
		First(&curriculum.StudentUnit{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student is not enrolled in this unit!", nil)
	}

	result := models.Result{
		StudentID: reqData.StudentID,
		UnitID:    unit.ID,
		Score:     reqData.Score,
		Remarks:   reqData.Remarks,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "unit_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "remarks", "updated_at"}),
	}).Create(&result).Error; err != nil {
		log.Printf("Error recording result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record result!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result recorded successfully.", result)
}

// UnitResults lists all results for a unit alongside the enrolled students.
func UnitResults(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	rows, err := unitResultRows(unit.ID)
	if err != nil {
		log.Printf("Error fetching unit results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", fiber.Map{
		"unit":    unit,
		"results": rows,
	})
}

type resultRow struct {
	StudentID   uint   `json:"student_id"`
	Name        string `json:"name"`
	AdmissionNo string `json:"admission_no"`
	Score       *int   `json:"score"`
	Remarks     string `json:"remarks"`
}

func unitResultRows(unitID uint) ([]resultRow, error) {
	db := database.Database.Db

	var students []models.User
	err := db.Joins("JOIN student_units ON student_units.student_id = users.id").
		Where("student_units.unit_id = ? AND users.is_deleted = ?", unitID, false).
		Order("users.name asc").Find(&students).Error
	if err != nil {
		return nil, err
	}

	var results []models.Result
	if err := db.Where("unit_id = ?", unitID).Find(&results).Error; err != nil {
		return nil, err
	}
	byStudent := make(map[uint]models.Result, len(results))
	for _, r := range results {
		byStudent[r.StudentID] = r
	}

	rows := make([]resultRow, 0, len(students))
	for _, s := range students {
		row := resultRow{StudentID: s.ID, Name: s.Name}
		if s.AdmissionNo != nil {
			row.AdmissionNo = *s.AdmissionNo
		}
		if r, ok := byStudent[s.ID]; ok {
			score := r.Score
			row.Score = &score
			row.Remarks = r.Remarks
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MyResults lists the signed in student's results across all units.
func MyResults(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var results []models.Result
	if err := db.Where("student_id = ?", userId).Order("updated_at desc").Find(&results).Error; err != nil {
		log.Printf("Error fetching student results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	type studentResult struct {
		models.Result
		UnitCode  string `json:"unit_code"`
		UnitTitle string `json:"unit_title"`
	}

	out := make([]studentResult, 0, len(results))
	for _, r := range results {
		sr := studentResult{Result: r}
		var unit curriculum.Unit
		if err := db.Select("code, title").First(&unit, r.UnitID).Error; err == nil {
			sr.UnitCode = unit.Code
			sr.UnitTitle = unit.Title
		}
		out = append(out, sr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully.", out)
}

// ExportUnitResults streams the unit's results as an .xlsx workbook.
func ExportUnitResults(c *fiber.Ctx) error {
	unitId, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit id!", nil)
	}

	db := database.Database.Db

	var unit curriculum.Unit
	if err := db.Where("id = ? AND is_deleted = ?", unitId, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Unit not found!", nil)
	}

	rows, err := unitResultRows(unit.ID)
	if err != nil {
		log.Printf("Error fetching unit results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export results!", nil)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Results"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Admission No", "Name", "Score", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		rowNum := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.AdmissionNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.Name)
		if row.Score != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), *row.Score)
		}
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.Remarks)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("Error writing results workbook: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export results!", nil)
	}

	filename := fmt.Sprintf("%s-results-%s.xlsx", unit.Code, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
