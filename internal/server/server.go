package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lazisku/maal/internal/amil"
	amildomain "github.com/lazisku/maal/internal/amil/domain"
	"github.com/lazisku/maal/internal/amilfunding"
	fundingdomain "github.com/lazisku/maal/internal/amilfunding/domain"
	"github.com/lazisku/maal/internal/asset"
	assetdomain "github.com/lazisku/maal/internal/asset/domain"
	"github.com/lazisku/maal/internal/config"
	"github.com/lazisku/maal/internal/distribution"
	distributiondomain "github.com/lazisku/maal/internal/distribution/domain"
	"github.com/lazisku/maal/internal/donor"
	donordomain "github.com/lazisku/maal/internal/donor/domain"
	"github.com/lazisku/maal/internal/dskl"
	dskldomain "github.com/lazisku/maal/internal/dskl/domain"
	"github.com/lazisku/maal/internal/infaq"
	infaqdomain "github.com/lazisku/maal/internal/infaq/domain"
	"github.com/lazisku/maal/internal/nonhalal"
	nonhalaldomain "github.com/lazisku/maal/internal/nonhalal/domain"
	"github.com/lazisku/maal/internal/nucoin"
	nucoindomain "github.com/lazisku/maal/internal/nucoin/domain"
	"github.com/lazisku/maal/internal/observability"
	obsmiddleware "github.com/lazisku/maal/internal/observability/logger"
	obstracing "github.com/lazisku/maal/internal/observability/tracing"
	"github.com/lazisku/maal/internal/organization"
	organizationdomain "github.com/lazisku/maal/internal/organization/domain"
	"github.com/lazisku/maal/internal/reporting"
	reportingdomain "github.com/lazisku/maal/internal/reporting/domain"
	"github.com/lazisku/maal/internal/wallet"
	"github.com/lazisku/maal/internal/zakat"
	zakatdomain "github.com/lazisku/maal/internal/zakat/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	wallet.Module,
	organization.Module,
	amil.Module,
	donor.Module,
	zakat.Module,
	infaq.Module,
	dskl.Module,
	amilfunding.Module,
	distribution.Module,
	nonhalal.Module,
	nucoin.Module,
	asset.Module,
	reporting.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	organizationSvc organizationdomain.Service
	amilSvc         amildomain.Service
	donorSvc        donordomain.Service
	zakatSvc        zakatdomain.Service
	infaqSvc        infaqdomain.Service
	dsklSvc         dskldomain.Service
	fundingSvc      fundingdomain.Service
	distributionSvc distributiondomain.Service
	nonHalalSvc     nonhalaldomain.Service
	nuCoinSvc       nucoindomain.Service
	assetSvc        assetdomain.Service
	reportingSvc    reportingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	OrganizationSvc organizationdomain.Service
	AmilSvc         amildomain.Service
	DonorSvc        donordomain.Service
	ZakatSvc        zakatdomain.Service
	InfaqSvc        infaqdomain.Service
	DsklSvc         dskldomain.Service
	FundingSvc      fundingdomain.Service
	DistributionSvc distributiondomain.Service
	NonHalalSvc     nonhalaldomain.Service
	NuCoinSvc       nucoindomain.Service
	AssetSvc        assetdomain.Service
	ReportingSvc    reportingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		organizationSvc: p.OrganizationSvc,
		amilSvc:         p.AmilSvc,
		donorSvc:        p.DonorSvc,
		zakatSvc:        p.ZakatSvc,
		infaqSvc:        p.InfaqSvc,
		dsklSvc:         p.DsklSvc,
		fundingSvc:      p.FundingSvc,
		distributionSvc: p.DistributionSvc,
		nonHalalSvc:     p.NonHalalSvc,
		nuCoinSvc:       p.NuCoinSvc,
		assetSvc:        p.AssetSvc,
		reportingSvc:    p.ReportingSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Organizations --------
	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations", s.ListOrganizations)
	api.GET("/organizations/:id", s.GetOrganizationByID)

	// -------- Organizers & Amils --------
	api.POST("/organizers", s.CreateOrganizer)
	api.GET("/organizers", s.ListOrganizers)
	api.GET("/organizers/:id", s.GetOrganizerByID)
	api.POST("/amils", s.CreateAmil)
	api.GET("/amils", s.ListAmils)
	api.GET("/amils/:id", s.GetAmilByID)

	// -------- Volunteers & Donors --------
	api.POST("/volunteers", s.CreateVolunteer)
	api.GET("/volunteers", s.ListVolunteers)
	api.GET("/volunteers/:id", s.GetVolunteerByID)
	api.POST("/donors", s.CreateDonor)
	api.POST("/donors/bulk", s.CreateDonorsBulk)
	api.GET("/donors", s.ListDonors)
	api.GET("/donors/:id", s.GetDonorByID)

	// -------- Collections --------
	api.POST("/zakats", s.CreateZakat)
	api.GET("/zakats", s.ListZakats)
	api.GET("/zakats/:id", s.GetZakatByID)
	api.PUT("/zakats/:id", s.UpdateZakat)
	api.POST("/infaqs", s.CreateInfaq)
	api.GET("/infaqs", s.ListInfaqs)
	api.GET("/infaqs/:id", s.GetInfaqByID)
	api.POST("/dskls", s.CreateDskl)
	api.GET("/dskls", s.ListDskls)
	api.GET("/dskls/:id", s.GetDsklByID)

	// -------- Amil funding --------
	api.POST("/amil_fundings", s.CreateAmilFunding)
	api.GET("/amil_fundings", s.ListAmilFundings)
	api.GET("/amil_fundings/:id", s.GetAmilFundingByID)
	api.POST("/amil_funding_usages", s.CreateAmilFundingUsage)
	api.GET("/amil_funding_usages", s.ListAmilFundingUsages)
	api.GET("/amil_funding_usages/:id", s.GetAmilFundingUsageByID)

	// -------- Distributions --------
	api.POST("/donees", s.CreateDonee)
	api.GET("/donees", s.ListDonees)
	api.GET("/donees/:id", s.GetDoneeByID)
	api.POST("/zakat_distributions", s.CreateZakatDistribution)
	api.GET("/zakat_distributions", s.ListZakatDistributions)
	api.GET("/zakat_distributions/:id", s.GetZakatDistributionByID)
	api.POST("/infaq_distributions", s.CreateInfaqDistribution)
	api.GET("/infaq_distributions", s.ListInfaqDistributions)
	api.GET("/infaq_distributions/:id", s.GetInfaqDistributionByID)

	// -------- Non-halal funds --------
	api.POST("/non_halal_receives", s.CreateNonHalalReceive)
	api.GET("/non_halal_receives", s.ListNonHalalReceives)
	api.GET("/non_halal_receives/:id", s.GetNonHalalReceiveByID)
	api.POST("/non_halal_distributions", s.CreateNonHalalDistribution)
	api.GET("/non_halal_distributions", s.ListNonHalalDistributions)
	api.GET("/non_halal_distributions/:id", s.GetNonHalalDistributionByID)

	// -------- NU Coin --------
	api.POST("/nu_coins", s.CreateNuCoin)
	api.GET("/nu_coins", s.ListNuCoins)
	api.GET("/nu_coins/:id", s.GetNuCoinByID)
	api.POST("/nu_coin_aggregates", s.CreateNuCoinAggregate)
	api.POST("/nu_coin_transfers", s.CreateNuCoinTransfer)
	api.GET("/nu_coin_transfers", s.ListNuCoinTransfers)
	api.GET("/nu_coin_transfers/:id", s.GetNuCoinTransferByID)
	api.POST("/nu_coins/move_fund", s.MoveNuCoinFund)

	// -------- Assets --------
	api.POST("/asset_recordings", s.CreateAssetRecording)
	api.GET("/asset_recordings", s.ListAssetRecordings)
	api.GET("/asset_recordings/:id", s.GetAssetRecordingByID)

	// -------- Reporting --------
	api.GET("/transactions", s.ListTransactions)
	api.GET("/wallet_mutations", s.GetWalletMutation)
	api.GET("/reports/yearly", s.GetYearlyRecap)
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal", payload.Type
	case status == http.StatusUnprocessableEntity:
		return "unprocessable", payload.Type
	default:
		return "client", payload.Type
	}
}
