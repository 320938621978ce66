package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
	"github.com/jhoicas/Supermercado-api/internal/application/validation"
	"github.com/jhoicas/Supermercado-api/internal/domain"
	"github.com/jhoicas/Supermercado-api/internal/domain/entity"
	"github.com/jhoicas/Supermercado-api/internal/domain/repository"
	"github.com/jhoicas/Supermercado-api/pkg/textfold"
)

// ProductUseCase casos de uso CRUD para productos. El stock también lo mueve el motor de pedidos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	providerRepo repository.ProviderRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, providerRepo repository.ProviderRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, providerRepo: providerRepo}
}

// Create crea un nuevo producto. El código se guarda en mayúsculas.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Normalize()
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := validation.Money("price", in.Price); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, "Ya existe un producto con el código %s", in.Code)
	}
	if err := uc.checkProvider(ctx, in.Provider); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ProviderRUC: in.Provider,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, code)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda opcional (sin distinguir acentos ni mayúsculas) y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if in.Query != "" {
		list = lo.Filter(list, func(p *entity.Product, _ int) bool {
			return textfold.Contains(p.Code, in.Query) ||
				textfold.Contains(p.Name, in.Query) ||
				textfold.Contains(p.Description, in.Query)
		})
	}
	total := len(list)
	page := lo.Slice(list, in.Offset, in.Offset+in.Limit)
	return &dto.ProductListResponse{
		Items: lo.Map(page, func(p *entity.Product, _ int) dto.ProductResponse { return *toProductResponse(p) }),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update aplica una actualización parcial. Los campos no enviados quedan intactos; el stock
// solo se escribe si viene en la petición, para no pisar descuentos hechos por pedidos en curso.
func (uc *ProductUseCase) Update(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, code)
	if err != nil {
		return nil, err
	}
	merged := dto.CreateProductRequest{
		Code:        product.Code,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Provider:    product.ProviderRUC,
	}
	in.ApplyTo(&merged)
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	if err := validation.Money("price", merged.Price); err != nil {
		return nil, err
	}
	if in.Provider != nil {
		if err := uc.checkProvider(ctx, merged.Provider); err != nil {
			return nil, err
		}
	}
	product.Name = merged.Name
	product.Description = merged.Description
	product.Price = merged.Price
	product.ProviderRUC = merged.Provider
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Stock != nil {
		if err := uc.repo.SetStock(ctx, product.Code, merged.Stock); err != nil {
			return nil, err
		}
	}
	// Releer devuelve el stock vigente aunque un pedido lo haya movido entretanto.
	return uc.GetByCode(ctx, product.Code)
}

// Delete elimina un producto por código.
func (uc *ProductUseCase) Delete(ctx context.Context, code string) error {
	product, err := uc.get(ctx, code)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, product.Code)
}

func (uc *ProductUseCase) get(ctx context.Context, code string) (*entity.Product, error) {
	code = normalizeCode(code)
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Producto %s no encontrado", code)
	}
	return product, nil
}

func (uc *ProductUseCase) checkProvider(ctx context.Context, ruc string) error {
	if ruc == "" {
		return nil
	}
	provider, err := uc.providerRepo.GetByRUC(ctx, ruc)
	if err != nil {
		return err
	}
	if provider == nil {
		return domain.Errorf(domain.ErrInvalidInput, "El proveedor %s no existe", ruc)
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Provider:    p.ProviderRUC,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
