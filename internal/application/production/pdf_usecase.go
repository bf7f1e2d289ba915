package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// BatchSheetData datos ya resueltos para la ficha de producción en PDF.
type BatchSheetData struct {
	BusinessName string
	BranchName   string
	Batch        *dto.ProductionBatchResponse
}

// BatchSheetGenerator genera la ficha de producción en PDF.
type BatchSheetGenerator interface {
	GenerateBatchSheet(ctx context.Context, data BatchSheetData) ([]byte, error)
}

// PDFUseCase arma la ficha de producción de un lote: encabezado del negocio,
// receta congelada con costos y totales. La ficha se imprime al planificar
// para que el barista sepa qué pesar; también sirve como comprobante del
// lote ya confirmado.
type PDFUseCase struct {
	uc           *UseCase
	businessRepo repository.BusinessRepository
	generator    BatchSheetGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(uc *UseCase, businessRepo repository.BusinessRepository, generator BatchSheetGenerator) *PDFUseCase {
	return &PDFUseCase{uc: uc, businessRepo: businessRepo, generator: generator}
}

// DownloadBatchSheet genera el PDF de la ficha y su nombre de archivo.
// Retorna domain.ErrNotFound si el lote no existe o es de otro negocio.
func (p *PDFUseCase) DownloadBatchSheet(ctx context.Context, businessID, batchID string) (pdfBytes []byte, filename string, err error) {
	batch, err := p.uc.GetByID(businessID, batchID)
	if err != nil {
		return nil, "", err
	}

	data := BatchSheetData{Batch: batch}
	if business, bErr := p.businessRepo.GetByID(businessID); bErr == nil && business != nil {
		data.BusinessName = business.Name
	}
	if branch, brErr := p.uc.branchRepo.GetByID(batch.BranchID); brErr == nil && branch != nil {
		data.BranchName = branch.Name
	}

	pdfBytes, err = p.generator.GenerateBatchSheet(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("ficha_produccion_%s.pdf", shortID(batch.ID))
	return pdfBytes, filename, nil
}

// shortID recorta el UUID para nombres de archivo legibles.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
