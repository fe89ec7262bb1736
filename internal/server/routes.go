package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	reporth "github.com/auditwarp/auditwarp/internal/server/handlers/report"
	walrush "github.com/auditwarp/auditwarp/internal/server/handlers/walrus"
	"github.com/auditwarp/auditwarp/internal/server/middlewares"
	"github.com/auditwarp/auditwarp/internal/version"
)

func SetupRoutes(svc *Services, config *Config) http.Handler {
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20 // 8 MiB

	walrusH := walrush.New(svc.Walrus, svc.Sui, svc.Reports)
	reportH := reporth.New(svc.Reports)
	ipfsH := walrush.NewIPFS(svc.IPFS)

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger())
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.BestSpeed))
	r.Use(cors.Default())

	r.GET("/", IndexHandler)
	r.GET("/healthz", HealthHandler)

	api := r.Group("/api")
	{
		w := api.Group("/walrus")
		{
			deployRate := config.DeployRateLimit
			if deployRate == "" {
				deployRate = "10-M"
			}
			w.POST("/deploy", middlewares.RateLimiter(deployRate), walrusH.Deploy)
			w.PUT("/upload", walrusH.Upload)
			w.GET("/blob/:blobId", walrusH.GetBlob)
			w.HEAD("/blob/:blobId", walrusH.HeadBlob)
			w.POST("/estimate-deployment", walrusH.EstimateDeployment)
			w.GET("/deployment-status/:blobId", walrusH.DeploymentStatus)
			w.GET("/status", walrusH.NetworkStatus)
		}

		api.POST("/ipfs/pin", ipfsH.Pin)

		api.GET("/audit-reports", reportH.ListAuditReports)
		api.GET("/audit-reports/:id", reportH.GetAuditReport)
		api.POST("/audit-reports", reportH.CreateAuditReport)
		api.PUT("/audit-reports/:id", reportH.UpdateAuditReport)

		api.GET("/nft-certificates", reportH.ListNftCertificates)
		api.POST("/nft-certificates", reportH.CreateNftCertificate)

		api.GET("/bridge-transactions", reportH.ListBridgeTransactions)
		api.POST("/bridge-transactions", reportH.CreateBridgeTransaction)
		api.PUT("/bridge-transactions/:id", reportH.UpdateBridgeTransaction)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
		})
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": "method not allowed",
		})
	})

	return r.Handler()
}

func IndexHandler(ctx *gin.Context) {
	ctx.String(http.StatusOK, version.DetailedWithApp())
}

func HealthHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}
