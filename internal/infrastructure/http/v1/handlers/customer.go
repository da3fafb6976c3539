package handlers

import (
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/infrastructure/http/v1/dto"
)

// CustomerHTTPHandler is the catalog handler specialized for customers.
type CustomerHTTPHandler = CatalogHandler[
	*customer.Customer,
	dto.CreateCustomerRequest,
	dto.UpdateCustomerRequest,
]

// NewCustomerHandler wires the generic catalog handler for the
// customer catalog. Delete protection (customers with bills) lives in
// the service's hooks, so no endpoint-level specialization is needed.
func NewCustomerHandler(
	base *BaseHandler,
	service *customer.Service,
) *CustomerHTTPHandler {
	config := CatalogHandlerConfig[
		*customer.Customer,
		dto.CreateCustomerRequest,
		dto.UpdateCustomerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "customer",

		MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(c *customer.Customer) any {
			return dto.FromCustomer(c)
		},
	}

	return NewCatalogHandler(base, config)
}
