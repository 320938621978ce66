package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Supermercado-api/internal/application/dto"
)

type catalog struct {
	Admin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
	Providers []dto.ProviderRequest `yaml:"proveedores"`
	Products  []productSeed         `yaml:"productos"`
}

type productSeed struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Stock       int    `yaml:"stock"`
	Provider    string `yaml:"provider"`
}

func (p productSeed) request() (dto.CreateProductRequest, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return dto.CreateProductRequest{}, fmt.Errorf("producto %s: precio %q: %w", p.Code, p.Price, err)
	}
	return dto.CreateProductRequest{
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Stock:       p.Stock,
		Provider:    p.Provider,
	}, nil
}

func loadCatalog(path string) (*catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	if pw := os.Getenv("SEED_ADMIN_PASSWORD"); pw != "" {
		c.Admin.Password = pw
	}
	return &c, nil
}
