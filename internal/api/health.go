package api

import "context"

// Health checks the basic liveness endpoint. nil error means the service
// answered with a 2xx.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.get(ctx, "health", "/health")
	if err != nil {
		return err
	}
	if err := checkStatus("health", resp); err != nil {
		return err
	}
	drain(resp)
	return nil
}

// HealthDetailed checks the deep health endpoint, which exercises the
// service's own dependencies.
func (c *Client) HealthDetailed(ctx context.Context) error {
	resp, err := c.get(ctx, "health detailed", "/health/detailed")
	if err != nil {
		return err
	}
	if err := checkStatus("health detailed", resp); err != nil {
		return err
	}
	drain(resp)
	return nil
}
