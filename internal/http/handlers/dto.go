package handlers

import (
	"time"

	"github.com/labforge/labstock/internal/models"
)

type ComponentRequest struct {
	Name                 string  `json:"name"`
	Manufacturer         string  `json:"manufacturer"`
	Supplier             string  `json:"supplier"`
	PartNumber           string  `json:"part_number"`
	Description          string  `json:"description"`
	Quantity             int     `json:"quantity"`
	LocationBin          string  `json:"location_bin"`
	UnitPrice            float64 `json:"unit_price"`
	DatasheetLink        string  `json:"datasheet_link"`
	CriticalLowThreshold int     `json:"critical_low_threshold"`
	CategoryID           int     `json:"category_id"`
}

type ComponentResponse struct {
	models.Component
	Status models.StockStatus `json:"status"`
}

func toComponentResponse(c models.Component) ComponentResponse {
	return ComponentResponse{Component: c, Status: c.StockStatus()}
}

func toComponentResponses(components []models.Component) []ComponentResponse {
	out := make([]ComponentResponse, len(components))
	for i, c := range components {
		out[i] = toComponentResponse(c)
	}
	return out
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ComponentsSearchResult struct {
	Components []ComponentResponse `json:"components"`
	Pagination Pagination          `json:"pagination"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TransactionRequest struct {
	ComponentID int                    `json:"component_id"`
	Type        models.TransactionType `json:"type"`
	Quantity    int                    `json:"quantity"`
	Reason      string                 `json:"reason"`
	Project     string                 `json:"project"`
	Remarks     string                 `json:"remarks"`
}

type TransactionsSearchResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

type LowStockSummary struct {
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
	TotalCritical   int `json:"total_critical"`
}

type LowStockResult struct {
	LowStock   []ComponentResponse `json:"low_stock"`
	OutOfStock []ComponentResponse `json:"out_of_stock"`
	Summary    LowStockSummary     `json:"summary"`
}

type OldStockSummary struct {
	Count      int       `json:"count"`
	TotalValue float64   `json:"total_value"`
	StaleSince time.Time `json:"stale_since"`
}

type OldStockResult struct {
	OldStock []ComponentResponse `json:"old_stock"`
	Summary  OldStockSummary     `json:"summary"`
}

type UserRequest struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
	Password  string      `json:"password,omitempty"`
	IsActive  *bool       `json:"is_active,omitempty"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type ImportComponentsResult struct {
	ImportedCount int               `json:"imported"`
	Errors        []ValidationError `json:"errors"`
}
