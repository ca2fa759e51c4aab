package constants

// Redis key formats
const (
	// KeyStationGeo is the GEO set of all station locations
	KeyStationGeo = "stations:geo"

	// KeyRequestGeo is the GEO set of open (status=new) request locations
	KeyRequestGeo = "requests:geo"

	// KeyStationMeta holds per-station location metadata. Format: station:meta:{station_id}
	KeyStationMeta = "station:meta:%s"

	// KeyRequestMeta holds per-request location metadata. Format: request:meta:{request_id}
	KeyRequestMeta = "request:meta:%s"
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldGeohash   = "geohash"
)
