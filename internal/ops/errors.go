package ops

import "errors"

// Validation failures. An operation that returns one of these leaves the
// snapshot untouched.
var (
	ErrEmptyName          = errors.New("name must not be empty")
	ErrCategoryExists     = errors.New("category already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrInvalidTask        = errors.New("invalid task")
	ErrInvalidDate        = errors.New("invalid date")
	ErrNoPendingXP        = errors.New("no pending XP to post")
	ErrSpendGateLocked    = errors.New("spend gate is locked")
	ErrInvalidAmount      = errors.New("amount must be a non-negative number")
	ErrInvalidLedgerType  = errors.New("ledger entry type must be Earn or Spend")
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrInvalidProjectInfo = errors.New("invalid project")
)
