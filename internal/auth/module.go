package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gauth/internal/auth/inbound"
	"github.com/shandysiswandi/gauth/internal/auth/outbound/db"
	"github.com/shandysiswandi/gauth/internal/auth/outbound/mq"
	"github.com/shandysiswandi/gauth/internal/auth/usecase"
	"github.com/shandysiswandi/gauth/internal/pkg/clock"
	"github.com/shandysiswandi/gauth/internal/pkg/config"
	"github.com/shandysiswandi/gauth/internal/pkg/hash"
	"github.com/shandysiswandi/gauth/internal/pkg/instrument"
	"github.com/shandysiswandi/gauth/internal/pkg/jwt"
	"github.com/shandysiswandi/gauth/internal/pkg/messaging"
	"github.com/shandysiswandi/gauth/internal/pkg/otp"
	"github.com/shandysiswandi/gauth/internal/pkg/router"
	"github.com/shandysiswandi/gauth/internal/pkg/uid"
	"github.com/shandysiswandi/gauth/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
