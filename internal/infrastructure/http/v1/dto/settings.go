package dto

import (
	"billbook/internal/domain/settings"
)

// UpdateSettingsRequest is the request body for saving the company profile.
type UpdateSettingsRequest struct {
	CompanyName       string `json:"companyName" binding:"required"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	GSTIN             string `json:"gstin"`
	Website           string `json:"website"`
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	IFSCCode          string `json:"ifscCode"`
}

// ToEntity converts DTO to the settings singleton.
func (r *UpdateSettingsRequest) ToEntity() *settings.Settings {
	s := settings.Default()
	s.CompanyName = r.CompanyName
	s.Address = r.Address
	s.Phone = r.Phone
	s.Email = r.Email
	s.GSTIN = r.GSTIN
	s.Website = r.Website
	s.BankName = r.BankName
	s.BankAccountNumber = r.BankAccountNumber
	s.IFSCCode = r.IFSCCode
	return s
}

// SettingsResponse is the response body for the company profile.
type SettingsResponse struct {
	CompanyName       string `json:"companyName"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	GSTIN             string `json:"gstin"`
	Website           string `json:"website"`
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
	IFSCCode          string `json:"ifscCode"`
}

// FromSettings creates response DTO from the settings singleton.
func FromSettings(s *settings.Settings) *SettingsResponse {
	return &SettingsResponse{
		CompanyName:       s.CompanyName,
		Address:           s.Address,
		Phone:             s.Phone,
		Email:             s.Email,
		GSTIN:             s.GSTIN,
		Website:           s.Website,
		BankName:          s.BankName,
		BankAccountNumber: s.BankAccountNumber,
		IFSCCode:          s.IFSCCode,
	}
}
