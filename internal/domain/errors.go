package domain

import "errors"

var (
	// ErrNotConnected - хранилище не подключено или недоступно
	ErrNotConnected = errors.New("store is not connected")

	// ErrStationNotFound - станция с указанным id отсутствует
	ErrStationNotFound = errors.New("station not found")

	// ErrReportNotFound - сообщение об ошибке с указанным id отсутствует
	ErrReportNotFound = errors.New("report not found")

	// ErrDistrictNotFound - район отсутствует в справочнике
	ErrDistrictNotFound = errors.New("district not found")

	// ErrUnsupported - операция не поддерживается данным хранилищем
	ErrUnsupported = errors.New("operation is not supported by store")

	// ErrInvalidStation - станция не прошла проверку (например, нет координат)
	ErrInvalidStation = errors.New("invalid station")

	// ErrInvalidReport - сообщение не прошло проверку (например, нечисловой stationId)
	ErrInvalidReport = errors.New("invalid report")
)
