package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/antonyto02/nexsoft-inventory/internal/application/inventory"
	"github.com/antonyto02/nexsoft-inventory/pkg/config"
	"github.com/antonyto02/nexsoft-inventory/pkg/logger"
)

const (
	connectTimeout = 10 * time.Second
	messageTimeout = 15 * time.Second
)

// Listener suscribe al broker MQTT (AWS IoT u otro) y entrega cada mensaje al
// router de sensores. La entrega es en orden por topic: paho invoca los
// callbacks de forma secuencial, así que una lectura no adelanta a la anterior
// del mismo canal.
type Listener struct {
	client paho.Client
	router *inventory.SensorRouter
	prefix string
	log    *logger.Logger
}

// NewListener construye y conecta el listener. Con los tres PEM definidos usa
// TLS mutuo (AWS IoT); con los tres vacíos, TCP plano (broker local de desarrollo).
func NewListener(cfg config.MQTTConfig, router *inventory.SensorRouter, log *logger.Logger) (*Listener, error) {
	l := &Listener{
		router: router,
		prefix: strings.TrimSuffix(cfg.TopicPrefix, "/") + "/",
		log:    log,
	}

	opts := paho.NewClientOptions()
	// Sufijo aleatorio: dos instancias con el mismo client id se expulsan mutuamente del broker.
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.ClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetOrderMatters(true)
	opts.SetOnConnectHandler(l.onConnect)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warn().Err(err).Msg("conexión MQTT perdida, reintentando")
	})

	if cfg.KeyPEM != "" || cfg.CertPEM != "" || cfg.CAPEM != "" {
		tlsCfg, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.AddBroker(fmt.Sprintf("tls://%s:%d", cfg.Host, cfg.Port))
		opts.SetTLSConfig(tlsCfg)
	} else {
		opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	}

	l.client = paho.NewClient(opts)
	token := l.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timeout conectando a MQTT %s:%d", cfg.Host, cfg.Port)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("conectar a MQTT: %w", err)
	}
	return l, nil
}

// onConnect se ejecuta en cada (re)conexión: la suscripción no sobrevive a la
// reconexión, así que se renueva aquí.
func (l *Listener) onConnect(client paho.Client) {
	topic := l.prefix + "#"
	token := client.Subscribe(topic, 1, l.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		l.log.Error().Err(err).Str("topic", topic).Msg("fallo suscribiendo a topics de sensores")
		return
	}
	l.log.Info().Str("topic", topic).Msg("suscrito a topics de sensores")
}

func (l *Listener) handleMessage(_ paho.Client, msg paho.Message) {
	channel := strings.TrimPrefix(msg.Topic(), l.prefix)
	ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
	defer cancel()
	l.router.HandleMessage(ctx, channel, msg.Payload())
}

// Close desconecta del broker dejando drenar los mensajes en vuelo.
func (l *Listener) Close() {
	l.client.Disconnect(250)
}

func buildTLSConfig(cfg config.MQTTConfig) (*tls.Config, error) {
	cert, err := tls.X509KeyPair([]byte(cfg.CertPEM), []byte(cfg.KeyPEM))
	if err != nil {
		return nil, fmt.Errorf("cargar certificado de cliente MQTT: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(cfg.CAPEM)) {
		return nil, fmt.Errorf("cargar CA de MQTT: PEM inválido")
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
