package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"supplies-backoffice/internal/dto"
	"supplies-backoffice/internal/services"
	"supplies-backoffice/pkg/constants"
	apperrors "supplies-backoffice/pkg/errors"
	"supplies-backoffice/pkg/utils"
)

type ArchiveController struct {
	archiveService services.ArchiveServiceInterface
	logger         *zap.Logger
}

func NewArchiveController(archiveService services.ArchiveServiceInterface, logger *zap.Logger) *ArchiveController {
	return &ArchiveController{archiveService: archiveService, logger: logger}
}

func (c *ArchiveController) parseFilter(ctx echo.Context) (constants.ArchiveFilter, error) {
	var query dto.ArchiveQueryDTO
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &query); err != nil {
		return "", apperrors.ErrInvalidArchiveType
	}
	if err := ctx.Validate(&query); err != nil {
		return "", apperrors.ErrInvalidArchiveType
	}
	filter, _ := constants.ParseArchiveFilter(query.Type)
	return filter, nil
}

// bindIDs читает {"ids": [...]} из тела запроса.
func (c *ArchiveController) bindIDs(ctx echo.Context) ([]uint64, error) {
	var payload dto.ArchiveIDsDTO
	if err := ctx.Bind(&payload); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Neispravno telo zahteva: očekuje se {\"ids\": [brojevi]}", err, nil)
	}
	if len(payload.IDs) == 0 {
		return nil, apperrors.ErrEmptyIDs
	}
	if err := ctx.Validate(&payload); err != nil {
		return nil, err
	}
	return payload.IDs, nil
}

func (c *ArchiveController) GetArchiveEntries(ctx echo.Context) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entries, err := c.archiveService.FetchArchiveEntries(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.ArchiveListDTO{Entries: entries}, "Arhiva uspešno učitana", http.StatusOK)
}

func (c *ArchiveController) PermanentlyDeleteArchiveEntries(ctx echo.Context) error {
	ids, err := c.bindIDs(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	deleted, err := c.archiveService.PermanentlyDeleteArchiveEntries(ctx.Request().Context(), ids)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, err.Error(), err, map[string]interface{}{"ids": ids}).
				WithDetails(dto.ArchivePurgeResultDTO{Success: false, DeletedCount: deleted}),
			c.logger)
	}

	return utils.SuccessResponse(ctx, dto.ArchivePurgeResultDTO{Success: true, DeletedCount: deleted},
		fmt.Sprintf("Trajno obrisano: %d", deleted), http.StatusOK)
}

func (c *ArchiveController) RestoreArchiveEntries(ctx echo.Context) error {
	ids, err := c.bindIDs(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	restored, err := c.archiveService.RestoreArchiveEntries(ctx.Request().Context(), ids)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, err.Error(), err, map[string]interface{}{"ids": ids}).
				WithDetails(dto.ArchiveRestoreResultDTO{Success: false, RestoredCount: restored}),
			c.logger)
	}

	return utils.SuccessResponse(ctx, dto.ArchiveRestoreResultDTO{Success: true, RestoredCount: restored},
		fmt.Sprintf("Vraćeno: %d", restored), http.StatusOK)
}

// CleanupExpired вызывается внешним планировщиком раз в сутки.
func (c *ArchiveController) CleanupExpired(ctx echo.Context) error {
	deleted, err := c.archiveService.CleanupExpiredArchiveEntries(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, err.Error(), err, nil).
				WithDetails(dto.ArchivePurgeResultDTO{Success: false, DeletedCount: deleted}),
			c.logger)
	}

	return utils.SuccessResponse(ctx, dto.ArchivePurgeResultDTO{Success: true, DeletedCount: deleted},
		fmt.Sprintf("Očišćeno isteklih zapisa: %d", deleted), http.StatusOK)
}

var archiveExportHeaders = []string{
	"ID", "Tip", "Porudžbina", "Dokument", "Naziv", "Obrisano", "Ističe", "Preostalo dana",
}

func archiveRowToSlice(e dto.ArchiveEntryDTO, now time.Time) []interface{} {
	dateFmt := "02.01.2006 15:04"
	var documentID interface{} = ""
	if e.DocumentID != nil {
		documentID = *e.DocumentID
	}
	daysLeft := int(e.ExpiresAt.Sub(now).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}

	return []interface{}{
		e.ID, string(e.ItemType), e.OrderID, documentID, e.Label,
		e.DeletedAt.Local().Format(dateFmt), e.ExpiresAt.Local().Format(dateFmt), daysLeft,
	}
}

func (c *ArchiveController) ExportArchiveEntries(ctx echo.Context) error {
	filter, err := c.parseFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	entries, err := c.archiveService.FetchArchiveEntries(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Arhiva"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := f.SetSheetRow(sheet, "A1", &archiveExportHeaders); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	now := time.Now()
	for i, entry := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := archiveRowToSlice(entry, now)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	}
	_ = f.SetColWidth(sheet, "E", "E", 50)
	_ = f.SetColWidth(sheet, "F", "G", 20)

	fileName := fmt.Sprintf("archive_%s_%s.xlsx", filter, now.Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
