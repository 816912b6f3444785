package sqlite

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"time"

	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, u *uuid.UUID) error {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func convertToDB_Role(r dao.Role) string {
	return r.String()
}

func convertFromDB_Role(s string, r *dao.Role) error {
	parsed, err := dao.ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// the empty string stands in for a user with no email set
func convertToDB_Email(email *mail.Address) string {
	if email == nil {
		return ""
	}
	return email.Address
}

func convertFromDB_Email(s string, email **mail.Address) error {
	if s == "" {
		*email = nil
		return nil
	}
	parsed, err := mail.ParseAddress(s)
	if err != nil {
		return err
	}
	*email = parsed
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(unix int64, t *time.Time) error {
	*t = time.Unix(unix, 0)
	return nil
}

func convertToDB_ByteSlice(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func convertFromDB_ByteSlice(s string, data *[]byte) error {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("not valid base64: %w", err)
	}
	*data = decoded
	return nil
}
