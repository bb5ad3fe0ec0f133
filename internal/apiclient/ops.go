package apiclient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"bananabill/internal/domain"
	"bananabill/internal/service"
)

// Login authenticates with mobile and password and stores the issued pair.
func (c *Client) Login(ctx context.Context, mobile, password string) (*service.AuthResult, error) {
	var result service.AuthResult
	err := c.Post(ctx, "/api/v1/auth/login", service.LoginInput{
		Mobile:   mobile,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.store.SetTokens(result.Tokens.AccessToken, result.Tokens.RefreshToken)
	return &result, nil
}

// Register creates an account and stores the issued pair.
func (c *Client) Register(ctx context.Context, name, mobile, password string) (*service.AuthResult, error) {
	var result service.AuthResult
	err := c.Post(ctx, "/api/v1/auth/register", service.RegisterInput{
		Name:     name,
		Mobile:   mobile,
		Password: password,
	}, &result)
	if err != nil {
		return nil, err
	}
	c.store.SetTokens(result.Tokens.AccessToken, result.Tokens.RefreshToken)
	return &result, nil
}

// Logout revokes the current refresh token and clears the store.
func (c *Client) Logout(ctx context.Context) error {
	refreshToken := c.store.RefreshToken()
	defer c.store.Clear()
	if refreshToken == "" {
		return nil
	}
	return c.Post(ctx, "/api/v1/auth/logout", map[string]string{"refresh_token": refreshToken}, nil)
}

// CreateBill submits raw intake measurements and returns the derived bill.
func (c *Client) CreateBill(ctx context.Context, input service.CreateBillInput) (*domain.Bill, error) {
	var bill domain.Bill
	if err := c.Post(ctx, "/api/v1/bills", input, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// GetBill fetches a single bill by ID.
func (c *Client) GetBill(ctx context.Context, billID uuid.UUID) (*domain.Bill, error) {
	var bill domain.Bill
	if err := c.Get(ctx, "/api/v1/bills/"+billID.String(), &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListBills fetches a page of bills.
func (c *Client) ListBills(ctx context.Context, offset, limit int) ([]domain.Bill, error) {
	var bills []domain.Bill
	path := fmt.Sprintf("/api/v1/bills?offset=%d&limit=%d", offset, limit)
	if err := c.Get(ctx, path, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// RecordPayment records a payment against a bill.
func (c *Client) RecordPayment(ctx context.Context, billID uuid.UUID, input service.RecordPaymentInput) (*domain.Bill, error) {
	var bill domain.Bill
	if err := c.Post(ctx, "/api/v1/bills/"+billID.String()+"/payments", input, &bill); err != nil {
		return nil, err
	}
	return &bill, nil
}

// Dashboard fetches the headline stats.
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.Get(ctx, "/api/v1/dashboard", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
