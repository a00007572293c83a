package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/MSMikl/aviata-test/internal/app/dto"
	"github.com/go-kit/kit/endpoint"
)

type AggregatorService interface {
	CreateSearch(ctx context.Context) (dto.CreateSearchResponse, error)
	GetResults(ctx context.Context, req dto.ResultsRequest) (dto.SearchResultsResponse, error)
}

type Endpoints struct {
	AggregatorEndpoint AggregatorEndpoint
}

type AggregatorEndpoint struct {
	CreateSearch endpoint.Endpoint
	GetResults   endpoint.Endpoint
}

func MakeAggregatorEndpoint(service AggregatorService) AggregatorEndpoint {
	return AggregatorEndpoint{
		CreateSearch: makeCreateSearchEndpoint(service),
		GetResults:   makeGetResultsEndpoint(service),
	}
}

func makeCreateSearchEndpoint(service AggregatorService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		response, err := service.CreateSearch(ctx)
		if err != nil {
			return nil, fmt.Errorf("aggregator service: %w", err)
		}

		return response, nil
	}
}

func makeGetResultsEndpoint(service AggregatorService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ResultsRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		results, err := service.GetResults(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("aggregator service: %w", err)
		}

		return results, nil
	}
}
