package api

type GenerateSaltRequest struct{}

func (m *GenerateSaltRequest) MarshalProto(b []byte) []byte { return b }

func (m *GenerateSaltRequest) UnmarshalProto(b []byte) error { return skipAll(b) }

type GenerateSaltResponse struct {
	Salt string
}

func (m *GenerateSaltResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.Salt)
}

func (m *GenerateSaltResponse) UnmarshalProto(b []byte) error {
	*m = GenerateSaltResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.Salt)
		}
		return nil
	})
}

// HashRequest carries raw bytes so any input, valid UTF-8 or not, hashes
// the same remotely as it does locally.
type HashRequest struct {
	Input []byte
}

func (m *HashRequest) MarshalProto(b []byte) []byte {
	return appendBytes(b, 1, m.Input)
}

func (m *HashRequest) UnmarshalProto(b []byte) error {
	*m = HashRequest{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setBytes(&m.Input)
		}
		return nil
	})
}

type HashResponse struct {
	Digest string
}

func (m *HashResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.Digest)
}

func (m *HashResponse) UnmarshalProto(b []byte) error {
	*m = HashResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.Digest)
		}
		return nil
	})
}

// DerivePasswordRequest derives with the iterated scheme when KDF is empty.
type DerivePasswordRequest struct {
	Password []byte
	Salt     string
	KDF      string
}

func (m *DerivePasswordRequest) MarshalProto(b []byte) []byte {
	b = appendBytes(b, 1, m.Password)
	b = appendString(b, 2, m.Salt)
	return appendString(b, 3, m.KDF)
}

func (m *DerivePasswordRequest) UnmarshalProto(b []byte) error {
	*m = DerivePasswordRequest{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setBytes(&m.Password)
		case 2:
			return f.setString(&m.Salt)
		case 3:
			return f.setString(&m.KDF)
		}
		return nil
	})
}

type DerivePasswordResponse struct {
	Credential string
	KDF        string
}

func (m *DerivePasswordResponse) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.Credential)
	return appendString(b, 2, m.KDF)
}

func (m *DerivePasswordResponse) UnmarshalProto(b []byte) error {
	*m = DerivePasswordResponse{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.Credential)
		case 2:
			return f.setString(&m.KDF)
		}
		return nil
	})
}

// GenerateUniqueTokenRequest uses the daemon's default length when Length
// is zero.
type GenerateUniqueTokenRequest struct {
	Table  string
	Column string
	Length int
}

func (m *GenerateUniqueTokenRequest) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.Table)
	b = appendString(b, 2, m.Column)
	return appendInt(b, 3, m.Length)
}

func (m *GenerateUniqueTokenRequest) UnmarshalProto(b []byte) error {
	*m = GenerateUniqueTokenRequest{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.Table)
		case 2:
			return f.setString(&m.Column)
		case 3:
			return f.setInt(&m.Length)
		}
		return nil
	})
}

type GenerateUniqueTokenResponse struct {
	Token string
}

func (m *GenerateUniqueTokenResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.Token)
}

func (m *GenerateUniqueTokenResponse) UnmarshalProto(b []byte) error {
	*m = GenerateUniqueTokenResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.Token)
		}
		return nil
	})
}

type RegisterRequest struct {
	Username string
	Password []byte
	Role     int
}

func (m *RegisterRequest) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	b = appendBytes(b, 2, m.Password)
	return appendInt(b, 3, m.Role)
}

func (m *RegisterRequest) UnmarshalProto(b []byte) error {
	*m = RegisterRequest{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.Username)
		case 2:
			return f.setBytes(&m.Password)
		case 3:
			return f.setInt(&m.Role)
		}
		return nil
	})
}

type RegisterResponse struct {
	AccountID string
	UserHash  string
}

func (m *RegisterResponse) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.AccountID)
	return appendString(b, 2, m.UserHash)
}

func (m *RegisterResponse) UnmarshalProto(b []byte) error {
	*m = RegisterResponse{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.AccountID)
		case 2:
			return f.setString(&m.UserHash)
		}
		return nil
	})
}

type LoginRequest struct {
	Username string
	Password []byte
}

func (m *LoginRequest) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.Username)
	return appendBytes(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalProto(b []byte) error {
	*m = LoginRequest{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.Username)
		case 2:
			return f.setBytes(&m.Password)
		}
		return nil
	})
}

type LoginResponse struct {
	AccessToken string
}

func (m *LoginResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.AccessToken)
}

func (m *LoginResponse) UnmarshalProto(b []byte) error {
	*m = LoginResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.AccessToken)
		}
		return nil
	})
}

type ChangePasswordRequest struct {
	OldPassword []byte
	NewPassword []byte
}

func (m *ChangePasswordRequest) MarshalProto(b []byte) []byte {
	b = appendBytes(b, 1, m.OldPassword)
	return appendBytes(b, 2, m.NewPassword)
}

func (m *ChangePasswordRequest) UnmarshalProto(b []byte) error {
	*m = ChangePasswordRequest{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setBytes(&m.OldPassword)
		case 2:
			return f.setBytes(&m.NewPassword)
		}
		return nil
	})
}

type ChangePasswordResponse struct{}

func (m *ChangePasswordResponse) MarshalProto(b []byte) []byte { return b }

func (m *ChangePasswordResponse) UnmarshalProto(b []byte) error { return skipAll(b) }

type IssueAPIKeyRequest struct{}

func (m *IssueAPIKeyRequest) MarshalProto(b []byte) []byte { return b }

func (m *IssueAPIKeyRequest) UnmarshalProto(b []byte) error { return skipAll(b) }

type IssueAPIKeyResponse struct {
	Key string
}

func (m *IssueAPIKeyResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.Key)
}

func (m *IssueAPIKeyResponse) UnmarshalProto(b []byte) error {
	*m = IssueAPIKeyResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.Key)
		}
		return nil
	})
}

type ProfileRequest struct{}

func (m *ProfileRequest) MarshalProto(b []byte) []byte { return b }

func (m *ProfileRequest) UnmarshalProto(b []byte) error { return skipAll(b) }

type ProfileResponse struct {
	AccountID string
	Username  string
	UserHash  string
	Role      string
	CreatedAt string
	LastLogin string
	APIKeys   int
}

func (m *ProfileResponse) MarshalProto(b []byte) []byte {
	b = appendString(b, 1, m.AccountID)
	b = appendString(b, 2, m.Username)
	b = appendString(b, 3, m.UserHash)
	b = appendString(b, 4, m.Role)
	b = appendString(b, 5, m.CreatedAt)
	b = appendString(b, 6, m.LastLogin)
	return appendInt(b, 7, m.APIKeys)
}

func (m *ProfileResponse) UnmarshalProto(b []byte) error {
	*m = ProfileResponse{}
	return consumeFields(b, func(f field) error {
		switch f.num {
		case 1:
			return f.setString(&m.AccountID)
		case 2:
			return f.setString(&m.Username)
		case 3:
			return f.setString(&m.UserHash)
		case 4:
			return f.setString(&m.Role)
		case 5:
			return f.setString(&m.CreatedAt)
		case 6:
			return f.setString(&m.LastLogin)
		case 7:
			return f.setInt(&m.APIKeys)
		}
		return nil
	})
}

type PingRequest struct{}

func (m *PingRequest) MarshalProto(b []byte) []byte { return b }

func (m *PingRequest) UnmarshalProto(b []byte) error { return skipAll(b) }

type PingResponse struct {
	Status string
}

func (m *PingResponse) MarshalProto(b []byte) []byte {
	return appendString(b, 1, m.Status)
}

func (m *PingResponse) UnmarshalProto(b []byte) error {
	*m = PingResponse{}
	return consumeFields(b, func(f field) error {
		if f.num == 1 {
			return f.setString(&m.Status)
		}
		return nil
	})
}
