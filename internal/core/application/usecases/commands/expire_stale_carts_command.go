package commands

import (
	"errors"
	"time"

	"pichuka/internal/pkg/errs"
	"pichuka/internal/pkg/guard"
)

var ErrExpireStaleCartsCommandIsNotConstructed = errors.New(
	"ExpireStaleCartsCommand must be created via NewExpireStaleCartsCommand constructor",
)

// ExpireStaleCartsCommand represents a janitor sweep that drains carts not
// touched within the time-to-live window.
type ExpireStaleCartsCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpireStaleCartsCommand creates a command to drain carts older than ttl.
func NewExpireStaleCartsCommand(ttl time.Duration) (ExpireStaleCartsCommand, error) {
	cmd := ExpireStaleCartsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTTL(ttl); err != nil {
		return ExpireStaleCartsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireStaleCartsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleCartsCommandIsNotConstructed)
}

// TTL returns how long a cart may stay untouched before it is drained.
func (c ExpireStaleCartsCommand) TTL() time.Duration {
	return c.ttl
}

func (c *ExpireStaleCartsCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsInvalidError("ttl")
	}

	c.ttl = ttl
	return nil
}
