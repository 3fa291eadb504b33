package models

import (
	"testing"
)

func TestUserCreateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     UserCreateRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid student",
			req: UserCreateRequest{
				FirstName:   "Asha",
				LastName:    "Rao",
				Email:       "asha@example.com",
				Password:    "SecurePassword123!",
				AccountType: AccountStudent,
			},
			wantErr: false,
		},
		{
			name: "invalid email - format",
			req: UserCreateRequest{
				FirstName:   "Asha",
				LastName:    "Rao",
				Email:       "not-an-email",
				Password:    "SecurePassword123!",
				AccountType: AccountStudent,
			},
			wantErr: true,
			errMsg:  "email format is invalid",
		},
		{
			name: "short password",
			req: UserCreateRequest{
				FirstName:   "Asha",
				LastName:    "Rao",
				Email:       "asha@example.com",
				Password:    "short",
				AccountType: AccountStudent,
			},
			wantErr: true,
			errMsg:  "password must be at least 8 characters long",
		},
		{
			name: "missing last name",
			req: UserCreateRequest{
				FirstName:   "Asha",
				Email:       "asha@example.com",
				Password:    "SecurePassword123!",
				AccountType: AccountInstructor,
			},
			wantErr: true,
			errMsg:  "last name is required",
		},
		{
			name: "unknown account type",
			req: UserCreateRequest{
				FirstName:   "Asha",
				LastName:    "Rao",
				Email:       "asha@example.com",
				Password:    "SecurePassword123!",
				AccountType: "Guest",
			},
			wantErr: true,
			errMsg:  "account type is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error but got none")
					return
				}
				if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Validate() error = %v, want %v", err.Error(), tt.errMsg)
				}
			} else if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestUser_Details(t *testing.T) {
	user := &User{ID: 7, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", PasswordHash: "secret"}

	details := user.Details()
	if details.ID != 7 || details.Email != "asha@example.com" {
		t.Errorf("Details() = %+v", details)
	}
	if user.FullName() != "Asha Rao" {
		t.Errorf("FullName() = %q", user.FullName())
	}
}
