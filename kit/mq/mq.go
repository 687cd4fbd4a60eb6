package mq

import (
	"context"
)

type Notify func(message []byte) error

type Message interface {
	GetKey() string
	Marshal() ([]byte, error)
}

type Observer interface {
	GetKey() string
	Notify(message []byte) error
	UnSubscribeHook()
	ErrorHandler(error)
}

type MQTopic interface {
	Subscribe(key string, notify Notify, options ...ObserverOption) Observer
	UnSubscribe(observer Observer)
	Produce(ctx context.Context, message Message) error
	Done() <-chan struct{}
	Err() error
	Shutdown() bool
}

type ObserverOption func(*ObserverOptionConfig)

type ObserverOptionConfig struct {
	UnSubscribeHook func() error
	ErrorHandler    func(error)
}

func AddUnSubscribeHook(unSubscribeHook func() error) ObserverOption {
	return func(ooc *ObserverOptionConfig) {
		ooc.UnSubscribeHook = unSubscribeHook
	}
}

func AddErrorHandler(errorHandler func(error)) ObserverOption {
	return func(ooc *ObserverOptionConfig) {
		ooc.ErrorHandler = errorHandler
	}
}

type observer struct {
	key             string
	notify          Notify
	unSubscribeHook func() error
	errorHandler    func(error)
}

func CreateObserver(key string, notify Notify, options ...ObserverOption) Observer {
	config := new(ObserverOptionConfig)
	for _, option := range options {
		option(config)
	}
	return &observer{
		key:             key,
		notify:          notify,
		unSubscribeHook: config.UnSubscribeHook,
		errorHandler:    config.ErrorHandler,
	}
}

func (o *observer) GetKey() string {
	return o.key
}

func (o *observer) Notify(message []byte) error {
	return o.notify(message)
}

func (o *observer) UnSubscribeHook() {
	if o.unSubscribeHook != nil {
		o.unSubscribeHook() //nolint:errcheck
	}
}

func (o *observer) ErrorHandler(err error) {
	if o.errorHandler != nil {
		o.errorHandler(err)
	}
}
