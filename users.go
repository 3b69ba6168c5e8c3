package sheetpos

import (
	"context"
	"fmt"
)

// Users reads every user row, skipping blanks.
func (s *Store) Users(ctx context.Context) ([]User, error) {
	rows, err := s.backend.GetRange(ctx, s.users.dataRange())
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	list := make([]User, 0, len(rows))
	for _, row := range rows {
		if u, ok := s.codec.decodeUser(row); ok {
			list = append(list, u)
		}
	}
	return list, nil
}

// UserByLogin returns the user with the given login, or ErrNotFound.
func (s *Store) UserByLogin(ctx context.Context, login string) (User, error) {
	if login == "" {
		return User{}, fmt.Errorf("user lookup: login: %w", ErrEmptyKey)
	}
	row, err := s.findRow(ctx, s.users, []keyColumn{{col: userColLogin, value: login}})
	if err != nil {
		return User{}, fmt.Errorf("user %q: %w", login, err)
	}
	rows, err := s.backend.GetRange(ctx, s.users.rowRange(row))
	if err != nil {
		return User{}, fmt.Errorf("read user row %d: %w", row, err)
	}
	if len(rows) == 0 {
		return User{}, fmt.Errorf("user %q vanished at row %d: %w", login, row, ErrNotFound)
	}
	u, ok := s.codec.decodeUser(rows[0])
	if !ok {
		return User{}, fmt.Errorf("user %q at row %d is blank: %w", login, row, ErrNotFound)
	}
	return u, nil
}

// UpdateUser overwrites the row of the user identified by login. Login
// changes follow the same conflict rule as product renames: the new login
// must not belong to another row. Users are never deleted by this module;
// profile edits are the only mutation.
func (s *Store) UpdateUser(ctx context.Context, login string, u User) error {
	if err := s.writable(); err != nil {
		return err
	}
	if login == "" || u.Login == "" {
		return fmt.Errorf("update user: login: %w", ErrEmptyKey)
	}

	row, err := s.findRow(ctx, s.users, []keyColumn{{col: userColLogin, value: login}})
	if err != nil {
		return fmt.Errorf("update user %q: %w", login, err)
	}

	if u.Login != login {
		other, err := s.findRow(ctx, s.users, []keyColumn{{col: userColLogin, value: u.Login}})
		switch {
		case err == nil && other != row:
			return fmt.Errorf("login %q: %w", u.Login, ErrConflict)
		case err != nil && !isNotFound(err):
			return fmt.Errorf("update user %q: %w", login, err)
		}
	}

	if err := s.backend.UpdateRange(ctx, s.users.rowRange(row), [][]string{s.codec.encodeUser(u)}); err != nil {
		return fmt.Errorf("overwrite user row %d: %w", row, err)
	}
	s.log.Info("user updated", "login", u.Login, "row", row)
	return nil
}
