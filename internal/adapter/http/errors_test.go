package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dozirovkaa/shop-api/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	for _, tc := range []struct {
		err  error
		want int
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest},
		{usecase.ErrInvalidShipping, http.StatusBadRequest},
		{usecase.ErrEmptyCart, http.StatusBadRequest},
		{usecase.ErrProductNotFound, http.StatusNotFound},
		{usecase.ErrItemNotFound, http.StatusNotFound},
		{usecase.ErrOrderNotFound, http.StatusNotFound},
		{usecase.ErrDuplicate, http.StatusConflict},
		{usecase.ErrPaymentProvider, http.StatusBadGateway},
		{errors.New("mysql: deadlock"), http.StatusInternalServerError},
	} {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}

	// wrapped sentinels keep their mapping
	wrapped := fmt.Errorf("%w: size %q not available", usecase.ErrInvalidInput, "XXL")
	assert.Equal(t, http.StatusBadRequest, statusFor(wrapped))
}
