package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/robotalks/tts.go/pkg/speech"
)

// Topics under <prefix><id>/.
const (
	TopicCmd  = "cmd"
	TopicMsg  = "msg"
	TopicMeta = "meta"
)

// Meta is published retained on <id>/meta while the bridge is online.
type Meta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Bridge runs commands received over MQTT on a Worker and publishes
// the results.
type Bridge struct {
	Queue  *Queue
	ID     string
	Worker *speech.Worker

	meta []byte
}

// NewBridge creates a Bridge connecting to brokerURL.
func NewBridge(brokerURL, id string, meta Meta, worker *speech.Worker) (*Bridge, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %w", err)
	}
	// an empty retained message clears meta when the connection drops
	opts.SetBinaryWill(topicPrefix+id+"/"+TopicMeta, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("tts:" + id)
	}
	return newBridge(NewQueue(opts, topicPrefix), id, meta, worker)
}

func newBridge(q *Queue, id string, meta Meta, worker *speech.Worker) (*Bridge, error) {
	metaJSON, err := json.Marshal(&meta)
	if err != nil {
		return nil, err
	}
	b := &Bridge{Queue: q, ID: id, Worker: worker, meta: metaJSON}
	q.OnConnect = func(*Queue) { b.publishMeta() }
	return b, nil
}

// Name implements framework.Named.
func (b *Bridge) Name() string {
	return "mqtt-bridge"
}

// Run implements framework.Runnable.
func (b *Bridge) Run(ctx context.Context) error {
	token := b.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect MQTT: %w", err)
	}
	sub := b.Queue.Sub(b.topic(TopicCmd), b.handleCommand)
	<-ctx.Done()
	sub.Close()
	b.Queue.PubWith(b.topic(TopicMeta), nil, 1, true).Wait()
	b.Queue.Close()
	return nil
}

func (b *Bridge) topic(name string) string {
	return b.ID + "/" + name
}

func (b *Bridge) publishMeta() {
	b.Queue.PubWith(b.topic(TopicMeta), b.meta, 1, true)
}

// handleCommand queues the command in order and replies asynchronously.
// It runs on the MQTT client's router so it must not block: commands
// arriving while the worker backlog is full are rejected with ErrBusy.
func (b *Bridge) handleCommand(topic string, payload []byte) {
	req, err := DecodeRequest(payload)
	if err != nil {
		glog.Warningf("invalid request: %v", err)
		reply := &Reply{Error: err.Error()}
		if req != nil {
			reply.ID, reply.Op = req.ID, req.Op
		}
		b.reply(reply)
		return
	}
	if _, ok := speech.FindCommand(req.Op); !ok {
		b.reply(&Reply{ID: req.ID, Op: req.Op, Error: (&speech.UnknownCommandError{Name: req.Op}).Error()})
		return
	}
	run := func(d *speech.Device) error {
		return speech.Exec(d, req.Op, req.Args)
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	job := b.Worker.TryDoWith(id, req.Op, run)
	go func() {
		res := <-job.ResultChan()
		reply := &Reply{ID: res.ID, Op: job.Name(), OK: res.Err == nil}
		if res.Err != nil {
			reply.Error = res.Err.Error()
		}
		b.reply(reply)
	}()
}

func (b *Bridge) reply(r *Reply) {
	payload, err := r.Marshal()
	if err != nil {
		glog.Errorf("encode reply: %v", err)
		return
	}
	b.Queue.Pub(b.topic(TopicMsg), payload)
}
