package errors_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/campus-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorIsSorted() {
	ve := errors.NewValidationError()
	ve.AddFieldError("TimeScale", "must not be negative")
	ve.AddFieldErrorf("PhaseLengthSeconds", "must divide %v", 86400)

	s.True(ve.HasErrors())
	s.Equal(
		"validation failed: PhaseLengthSeconds: must divide 86400; TimeScale: must not be negative",
		ve.Error(),
	)

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("WorldID", "  ", vb)
	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "WorldID: is required")
}

func (s *ValidationTestSuite) TestFloatValidators() {
	testCases := []struct {
		name      string
		validate  func(vb *errors.ValidationBuilder)
		shouldErr bool
	}{
		{"positive ok", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 1, vb) }, false},
		{"positive zero", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", 0, vb) }, true},
		{"positive nan", func(vb *errors.ValidationBuilder) { errors.ValidatePositive("f", math.NaN(), vb) }, true},
		{"non-negative zero", func(vb *errors.ValidationBuilder) { errors.ValidateNonNegative("f", 0, vb) }, false},
		{"non-negative neg", func(vb *errors.ValidationBuilder) { errors.ValidateNonNegative("f", -1, vb) }, true},
		{"non-negative inf", func(vb *errors.ValidationBuilder) { errors.ValidateNonNegative("f", math.Inf(1), vb) }, true},
		{"half-open low edge", func(vb *errors.ValidationBuilder) { errors.ValidateHalfOpen("f", 0, 0, 24, vb) }, false},
		{"half-open high edge", func(vb *errors.ValidationBuilder) { errors.ValidateHalfOpen("f", 24, 0, 24, vb) }, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			tc.validate(vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}
