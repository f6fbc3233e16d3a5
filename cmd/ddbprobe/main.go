package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/raywall/ddbprobe/pkg/config"
	"github.com/raywall/ddbprobe/pkg/logger"
	"github.com/raywall/ddbprobe/pkg/metrics"
	"github.com/raywall/ddbprobe/pkg/observability"
	"github.com/raywall/ddbprobe/pkg/probe"
)

func main() {
	os.Exit(run(context.Background(), os.Stdout, os.Stderr))
}

// run devolve 0 mesmo quando probes falham; só falhas de inicialização
// mudam o código de saída.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "❌ Erro de configuração:\n%v\n", err)
		return 1
	}

	log := logger.Configure(cfg.Logging, stderr)

	client, err := newDynamoClient(ctx, cfg.Table)
	if err != nil {
		log.Error().Err(err).Msg("failed to load aws config")
		fmt.Fprintf(stderr, "❌ Erro ao carregar configuração da AWS: %v\n", err)
		return 1
	}

	provider, err := observability.SetupMetrics(cfg.Metrics)
	if err != nil {
		log.Warn().Err(err).Msg("metrics disabled")
		provider = &observability.NoopProvider{}
	}
	defer provider.Close()

	runner := probe.NewRunner(client, cfg,
		probe.WithOutput(stdout),
		probe.WithLogger(log),
		probe.WithMetrics(metrics.NewProcessor(provider, []string{"table:" + cfg.Table.Name})),
	)

	summary := runner.Run(ctx)
	log.Info().Int("passed", summary.Passed()).Int("failed", summary.Failed()).Msg("run complete")
	return 0
}

// newDynamoClient usa a cadeia padrão de credenciais; Endpoint permite
// apontar para o DynamoDB Local.
func newDynamoClient(ctx context.Context, table config.TableConf) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(table.Region))
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if table.Endpoint != "" {
			o.BaseEndpoint = aws.String(table.Endpoint)
		}
	}), nil
}
