package domain

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInsufficientCapacity возвращается, когда свободные столы
	// не покрывают размер компании
	ErrInsufficientCapacity = errors.New("domain: free tables cannot seat the party")

	// ErrInvalidPartySize возвращается при неположительном размере компании
	ErrInvalidPartySize = errors.New("domain: party size must be positive")
)

// FreeTables свободные столы, сгруппированные по вместимости
// Для каждой вместимости - очередь ID столов, упорядоченная по возрастанию,
// чтобы аллокация была детерминированной и воспроизводимой
type FreeTables map[int][]int64

// GroupFreeTables раскладывает столы ресторана по очередям вместимости,
// исключая уже занятые. ID внутри каждой очереди отсортированы по возрастанию
func GroupFreeTables(tables []Table, booked map[int64]struct{}) FreeTables {
	free := make(FreeTables)
	for _, t := range tables {
		if _, taken := booked[t.ID]; taken {
			continue
		}
		free[t.Seats] = append(free[t.Seats], t.ID)
	}
	for seats := range free {
		ids := free[seats]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return free
}

// Capacities возвращает вместимости с непустыми очередями, по возрастанию
func (f FreeTables) Capacities() []int {
	caps := make([]int, 0, len(f))
	for seats, ids := range f {
		if len(ids) > 0 {
			caps = append(caps, seats)
		}
	}
	sort.Ints(caps)
	return caps
}

// Count возвращает общее количество свободных столов
func (f FreeTables) Count() int {
	total := 0
	for _, ids := range f {
		total += len(ids)
	}
	return total
}

// TotalSeats возвращает суммарную вместимость свободных столов
func (f FreeTables) TotalSeats() int {
	total := 0
	for seats, ids := range f {
		total += seats * len(ids)
	}
	return total
}

// clone копирует очереди, чтобы аллокация не мутировала вход
func (f FreeTables) clone() FreeTables {
	c := make(FreeTables, len(f))
	for seats, ids := range f {
		c[seats] = append([]int64(nil), ids...)
	}
	return c
}

// Allocate подбирает конкретный набор столов под размер компании
//
// Жадная политика largest-fit-first с откатом на соседнюю очередь:
// пока остаток не покрыт, выбирается большая вместимость, если
// остаток >= largeCap - smallCap + 1 (в домене 2/4-местных столов это
// остаток >= 3), иначе меньшая; при пустой предпочтительной очереди
// берется другая. Выбранный стол снимается с головы очереди.
//
// Политика не дает глобально оптимального количества столов, но
// гарантирует достаточность вместимости и завершение: если ни одна
// очередь не может дать стол, возвращается ErrInsufficientCapacity
func Allocate(free FreeTables, partySize int) ([]int64, error) {
	if partySize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartySize, partySize)
	}

	queues := free.clone()
	result := make([]int64, 0, 2)
	remaining := partySize

	for remaining > 0 {
		caps := queues.Capacities()
		if len(caps) == 0 {
			// Защита от зацикливания: столы кончились, остаток не покрыт
			return nil, fmt.Errorf("%w: %d seats short for party of %d",
				ErrInsufficientCapacity, remaining, partySize)
		}

		smallCap := caps[0]
		largeCap := caps[len(caps)-1]

		// Большой стол эффективен, когда остаток не поместится за малым
		// с запасом меньше одного места. При единственной непустой очереди
		// smallCap == largeCap и выбор тривиален - это и есть откат
		chosen := smallCap
		if remaining >= largeCap-smallCap+1 {
			chosen = largeCap
		}

		result = append(result, queues[chosen][0])
		queues[chosen] = queues[chosen][1:]
		remaining -= chosen
	}

	return result, nil
}

// CanSeat проверяет, что свободные столы в принципе могут вместить компанию
func (f FreeTables) CanSeat(partySize int) bool {
	return f.TotalSeats() >= partySize
}
