package jobs

import (
	"log"
	"time"

	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"
)

// RenewalSweeper define el barrido diario de renovaciones y anuncios.
type RenewalSweeper interface {
	Sweep(m *melody.Melody, now time.Time) error
}

var renewalSweeper RenewalSweeper

// SetRenewalSweeper establece la implementación del barrido.
func SetRenewalSweeper(sweeper RenewalSweeper) {
	renewalSweeper = sweeper
}

// InitCronJobs registra las tareas programadas y arranca el cron.
func InitCronJobs(c *cron.Cron, m *melody.Melody) error {
	// Barrido diario a las 8:00
	_, err := c.AddFunc("0 8 * * *", func() {
		now := time.Now()
		log.Printf("Ejecutando el barrido diario de renovaciones: %v", now)
		if renewalSweeper == nil {
			log.Printf("Error: el barrido de renovaciones no está configurado")
			return
		}
		if err := renewalSweeper.Sweep(m, now); err != nil {
			log.Printf("Error en el barrido de renovaciones: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
