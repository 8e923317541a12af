//go:generate mockgen -source=../order_repository.go   -destination=./mock_order_repository.go   -package=mocks
//go:generate mockgen -source=../catalog_repository.go -destination=./mock_catalog_repository.go -package=mocks
//go:generate mockgen -source=../order_cache.go        -destination=./mock_order_cache.go        -package=mocks
//go:generate mockgen -source=../order_publisher.go    -destination=./mock_order_publisher.go    -package=mocks
//go:generate mockgen -source=../services.go           -destination=./mock_services.go           -package=mocks

package mocks
