package pubsub

import "context"

const (
	// CreatedEvent 一次运行开始（载荷为用户消息）
	CreatedEvent EventType = "created"
	// UpdatedEvent 运行中的进度（例如工具调用）
	UpdatedEvent EventType = "updated"
	// FinishedEvent 运行结束（成功或失败）
	FinishedEvent EventType = "finished"
)

// Subscriber returns a channel of events that closes when ctx is done.
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}

type (
	// EventType 标识事件的类型
	EventType string

	// Event is one step of an agent run.
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher fans an event out to all subscribers.
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)
