package main

import (
	"context"
	"net/http"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	redisCacheKit "github.com/superj80820/shortlink/kit/cache/redis"
	httpKit "github.com/superj80820/shortlink/kit/http"
	httpMiddlewareKit "github.com/superj80820/shortlink/kit/http/middleware"
	loggerKit "github.com/superj80820/shortlink/kit/logger"
	"github.com/superj80820/shortlink/kit/mq"
	kafkaMQKit "github.com/superj80820/shortlink/kit/mq/kafka"
	memoryMQKit "github.com/superj80820/shortlink/kit/mq/memory"
	ormKit "github.com/superj80820/shortlink/kit/orm"
	traceKit "github.com/superj80820/shortlink/kit/trace"
	utilKit "github.com/superj80820/shortlink/kit/util"
	"github.com/superj80820/shortlink/shortlink/delivery/background"
	httpDelivery "github.com/superj80820/shortlink/shortlink/delivery/http"
	"github.com/superj80820/shortlink/shortlink/repository/clickmq"
	mysqlRepo "github.com/superj80820/shortlink/shortlink/repository/mysql"
	redisRepo "github.com/superj80820/shortlink/shortlink/repository/redis"
	"github.com/superj80820/shortlink/shortlink/usecase"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "shortlink"

func main() {
	ctx := context.Background()

	var (
		addr            = utilKit.GetEnvString("ADDR", ":9090")
		publicBaseURL   = utilKit.GetEnvString("PUBLIC_BASE_URL", "http://localhost:9090")
		mysqlURI        = utilKit.GetRequireEnvString("MYSQL_URI")
		redisURI        = utilKit.GetRequireEnvString("REDIS_URI")
		kafkaURI        = utilKit.GetEnvString("KAFKA_URI", "")
		clickTopicName  = utilKit.GetEnvString("CLICK_TOPIC_NAME", "click-events")
		enableTracer    = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric    = utilKit.GetEnvBool("ENABLE_METRIC", true)
		rateLimitMax    = utilKit.GetEnvInt("RATE_LIMIT_MAX_REQUESTS", 100)
		rateLimitExpiry = utilKit.GetEnvInt("RATE_LIMIT_EXPIRY_SECONDS", 60)
	)

	logger, err := loggerKit.NewLogger("./go.log", loggerKit.InfoLevel)
	if err != nil {
		panic(err)
	}

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(ctx, serviceName)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	orm, err := ormKit.CreateDB(ormKit.UseMySQL(mysqlURI))
	if err != nil {
		panic(err)
	}
	cache, err := redisCacheKit.CreateCache(redisURI, "", 0)
	if err != nil {
		panic(err)
	}

	var clickMQTopic mq.MQTopic
	if kafkaURI != "" {
		clickMQTopic, err = kafkaMQKit.CreateMQTopic(ctx, kafkaURI, clickTopicName, serviceName)
		if err != nil {
			panic(err)
		}
	} else {
		clickMQTopic = memoryMQKit.CreateMemoryMQ(ctx, 1000)
	}

	linkRepo := mysqlRepo.CreateLinkRepo(orm)
	linkCacheRepo := redisRepo.CreateLinkCacheRepo(cache)
	clickEventRepo := clickmq.CreateClickEventRepo(clickMQTopic, logger)

	linkUseCase, err := usecase.CreateLinkUseCase(linkRepo, linkCacheRepo, clickEventRepo, logger)
	if err != nil {
		panic(err)
	}
	clickAccountantUseCase, err := usecase.CreateClickAccountantUseCase(clickEventRepo, linkRepo, logger)
	if err != nil {
		panic(err)
	}
	stopClickAccountant := background.RunClickAccountant(ctx, clickAccountantUseCase)

	rateLimit := utilKit.CreateCacheRateLimit(cache, rateLimitMax, rateLimitExpiry)

	serverOptions := []httptransport.ServerOption{
		httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
		httptransport.ServerAfter(httpKit.CustomAfterCtx),
		httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
	}
	middlewares := endpoint.Chain(
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
		httpMiddlewareKit.CreateRateLimitMiddleware(rateLimit.Pass),
		httpMiddlewareKit.CreateMetrics(serviceName, "http"),
	)

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Methods(http.MethodPost).Path("/links").Handler(httptransport.NewServer(
		middlewares(httpDelivery.MakeCreateLinkEndpoint(linkUseCase, publicBaseURL)),
		httpDelivery.DecodeCreateLinkRequest,
		httpDelivery.EncodeCreateLinkResponse,
		serverOptions...,
	))
	api.Methods(http.MethodGet).Path("/links").Handler(httptransport.NewServer(
		middlewares(httpDelivery.MakeListLinksEndpoint(linkUseCase, publicBaseURL)),
		httpDelivery.DecodeListLinksRequest,
		httpDelivery.EncodeListLinksResponse,
		serverOptions...,
	))
	api.Methods(http.MethodGet).Path("/links/{slug}").Handler(httptransport.NewServer(
		middlewares(httpDelivery.MakeGetStatsEndpoint(linkUseCase, publicBaseURL)),
		httpDelivery.DecodeGetStatsRequest,
		httpDelivery.EncodeGetStatsResponse,
		serverOptions...,
	))
	api.Methods(http.MethodPatch).Path("/links/{slug}/deactivate").Handler(httptransport.NewServer(
		middlewares(httpDelivery.MakeDeactivateLinkEndpoint(linkUseCase)),
		httpDelivery.DecodeDeactivateLinkRequest,
		httpDelivery.EncodeDeactivateLinkResponse,
		serverOptions...,
	))
	r.Methods(http.MethodGet).Path("/healthz").Handler(httptransport.NewServer(
		httpDelivery.MakeHealthCheckEndpoint(),
		httpDelivery.DecodeHealthCheckRequest,
		httpDelivery.EncodeHealthCheckResponse,
		serverOptions...,
	))
	if enableMetric {
		r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	}
	r.Methods(http.MethodGet).Path("/{slug}").Handler(httptransport.NewServer(
		middlewares(httpDelivery.MakeRedirectEndpoint(linkUseCase)),
		httpDelivery.DecodeRedirectRequest,
		httpDelivery.EncodeRedirectResponse,
		serverOptions...,
	))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: cors.Default().Handler(r),
	}

	var g run.Group
	g.Add(func() error {
		return httpServer.ListenAndServe()
	}, func(err error) {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	})
	g.Add(func() error {
		<-clickMQTopic.Done()
		return clickMQTopic.Err()
	}, func(err error) {
		stopClickAccountant()
		clickMQTopic.Shutdown()
	})
	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))
	if err := g.Run(); err != nil {
		logger.Error("server stopped: " + err.Error())
	}
}
