package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account     AccountSvcFacade
	Recurring   RecurringSvcFacade
	Candidate   CandidateSvcFacade
	Forecast    ForecastSvcFacade
	Transaction TransactionSvcFacade
	// Import is nil when no aggregation provider is configured.
	Import ImportSvcFacade
}
