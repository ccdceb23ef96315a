package api

import (
	"context"
	"fmt"
)

// ListClubs returns all clubs visible in the client's scope.
func (c *Client) ListClubs(ctx context.Context) ([]Club, error) {
	return fetchList[Club](ctx, c, "clubs", "clubs")
}

// GetClub returns one club by id.
func (c *Client) GetClub(ctx context.Context, id int64) (*Club, error) {
	var club Club
	if err := c.Get(ctx, fmt.Sprintf("clubs/%d", id), &club); err != nil {
		return nil, err
	}
	return &club, nil
}

// CreateClub creates a club from a wizard payload.
func (c *Client) CreateClub(ctx context.Context, payload map[string]any, opts ...RequestOption) (*Club, error) {
	var club Club
	if err := c.Post(ctx, "clubs", payload, &club, opts...); err != nil {
		return nil, err
	}
	return &club, nil
}

// UpdateClub updates an existing club.
func (c *Client) UpdateClub(ctx context.Context, id int64, payload map[string]any, opts ...RequestOption) (*Club, error) {
	var club Club
	if err := c.Put(ctx, fmt.Sprintf("clubs/%d", id), payload, &club, opts...); err != nil {
		return nil, err
	}
	return &club, nil
}

// DeleteClub removes a club.
func (c *Client) DeleteClub(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("clubs/%d", id))
}

// ListSponsors returns all sponsors visible in the client's scope.
func (c *Client) ListSponsors(ctx context.Context) ([]Sponsor, error) {
	return fetchList[Sponsor](ctx, c, "sponsors", "sponsors")
}

// GetSponsor returns one sponsor by id.
func (c *Client) GetSponsor(ctx context.Context, id int64) (*Sponsor, error) {
	var sp Sponsor
	if err := c.Get(ctx, fmt.Sprintf("sponsors/%d", id), &sp); err != nil {
		return nil, err
	}
	return &sp, nil
}

// ListContracts returns all contracts visible in the client's scope.
func (c *Client) ListContracts(ctx context.Context) ([]Contract, error) {
	return fetchList[Contract](ctx, c, "contracts", "contracts")
}

// GetContract returns one contract by id.
func (c *Client) GetContract(ctx context.Context, id int64) (*Contract, error) {
	var ct Contract
	if err := c.Get(ctx, fmt.Sprintf("contracts/%d", id), &ct); err != nil {
		return nil, err
	}
	return &ct, nil
}

// CreateContract creates a contract from a wizard payload.
func (c *Client) CreateContract(ctx context.Context, payload map[string]any, opts ...RequestOption) (*Contract, error) {
	var ct Contract
	if err := c.Post(ctx, "contracts", payload, &ct, opts...); err != nil {
		return nil, err
	}
	return &ct, nil
}

// UpdateContract updates an existing contract.
func (c *Client) UpdateContract(ctx context.Context, id int64, payload map[string]any, opts ...RequestOption) (*Contract, error) {
	var ct Contract
	if err := c.Put(ctx, fmt.Sprintf("contracts/%d", id), payload, &ct, opts...); err != nil {
		return nil, err
	}
	return &ct, nil
}

// ListChecklist returns the checklist tasks of a contract.
func (c *Client) ListChecklist(ctx context.Context, contractID int64) ([]ChecklistTask, error) {
	return fetchList[ChecklistTask](ctx, c, fmt.Sprintf("contracts/%d/checklist", contractID), "tasks")
}

// CreateChecklistTask adds a task to a contract's checklist.
func (c *Client) CreateChecklistTask(ctx context.Context, contractID int64, payload map[string]any, opts ...RequestOption) (*ChecklistTask, error) {
	var task ChecklistTask
	if err := c.Post(ctx, fmt.Sprintf("contracts/%d/checklist", contractID), payload, &task, opts...); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetStats returns the dashboard counters.
func (c *Client) GetStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.Get(ctx, "stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
