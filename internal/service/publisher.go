package service

import "github.com/Yasheenyash33/StacklyHub-main-main/internal/ws"

// Publisher — рассылка доменных событий наблюдателям. Вызывается после
// коммита; сбой рассылки мутацию не откатывает.
type Publisher interface {
	Broadcast(event ws.Event)
}
