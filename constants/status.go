package constants

// Roles del personal
const (
	RoleDireccion    = 1
	RoleContabilidad = 2
	RoleCoach        = 3
	RoleCloser       = 4
	RoleSetter       = 5
)

// Estado del cliente
const (
	ClientStatusActive   = "active"
	ClientStatusPaused   = "paused"
	ClientStatusDropout  = "dropout"
	ClientStatusInactive = "inactive"
)

// Estado de la venta
const (
	SaleStatusWon                 = "won"
	SaleStatusPending             = "pending"
	SaleStatusFailed              = "failed"
	SaleStatusOnboardingCompleted = "onboarding_completed"
)

// Estado de la factura de coach
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusApproved = "approved"
	InvoiceStatusRejected = "rejected"
)

// Canales de marketing
const (
	ChannelInstagramAds = "ads_instagram"
	ChannelFacebookAds  = "ads_facebook"
	ChannelGoogleAds    = "google_ads"
	ChannelInfluencers  = "influencers"
	ChannelOtros        = "otros"
)

// MarketingChannels lista los canales en el orden del dashboard.
var MarketingChannels = []string{
	ChannelInstagramAds,
	ChannelFacebookAds,
	ChannelGoogleAds,
	ChannelInfluencers,
	ChannelOtros,
}

// Audiencia de los anuncios
const (
	AudienceAllTeam     = "all_team"
	AudienceOnlyCoaches = "only_coaches"
	AudienceOnlyClosers = "only_closers"
)

// Fases del programa
const (
	PhaseF1 = "F1"
	PhaseF2 = "F2"
	PhaseF3 = "F3"
	PhaseF4 = "F4"
	PhaseF5 = "F5"
)

const (
	// DefaultForecastRenewalAmount se usa en el forecast cuando la renovación
	// no tiene importe asignado.
	DefaultForecastRenewalAmount = 997.0

	// DefaultContractDurationMonths cuando la venta no registra duración.
	DefaultContractDurationMonths = 6

	// UnassignedCloser y UnassignedCoach son los nombres de reserva para la
	// atribución de ingresos.
	UnassignedCloser = "Sistema"
	UnassignedCoach  = "Sin asignar"
)
